package notifier

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

var lowStockTmpl = template.Must(template.New("lowStock").Parse(`
<h2>Low Stock Alert</h2>
<p>The following product has fallen to or below the configured threshold of <b>{{.Threshold}}</b> units.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><td>Product</td><td>{{.Product.ProductName}}</td></tr>
  <tr><td>Model</td><td>{{.Product.Model}}</td></tr>
  <tr><td>Current stock</td><td><b>{{.Product.UnitStockQuantity}}</b></td></tr>
  <tr><td>Price per unit</td><td>{{printf "%.2f" .Product.PricePerQuantity}}</td></tr>
  <tr><td>Status</td><td>{{.Product.Status}}</td></tr>
</table>
<p>Please replenish stock via the <a href="{{.AppURL}}">{{.AppName}}</a> dashboard.</p>
<p><small>Sent at {{.SentAt}}</small></p>
`))

var newProductTmpl = template.Must(template.New("newProduct").Parse(`
<h2>New Product Added</h2>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><td>Product</td><td>{{.Product.ProductName}}</td></tr>
  <tr><td>Model</td><td>{{.Product.Model}}</td></tr>
  <tr><td>Initial stock</td><td>{{.Product.UnitStockQuantity}}</td></tr>
  <tr><td>Price per unit</td><td>{{printf "%.2f" .Product.PricePerQuantity}}</td></tr>
  <tr><td>Total value</td><td>{{printf "%.2f" .Product.TotalPrice}}</td></tr>
</table>
<p><a href="{{.AppURL}}">{{.AppName}}</a></p>
<p><small>Sent at {{.SentAt}}</small></p>
`))

var replenishedTmpl = template.Must(template.New("replenished").Parse(`
<h2>Stock Replenished</h2>
<p><b>{{.QuantityAdded}}</b> units of <b>{{.Product.ProductName}}</b> ({{.Product.Model}}) were added.</p>
<p>Stock is now <b>{{.Product.UnitStockQuantity}}</b> units.</p>
<p><small>{{.AppName}} &middot; Sent at {{.SentAt}}</small></p>
`))

var orderConfirmedTmpl = template.Must(template.New("orderConfirmed").Parse(`
<h2>Order Confirmed</h2>
<p>Hi {{.Customer.Name}}, thank you for your purchase!</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Product</th><th>Model</th><th>Quantity</th><th>Unit price</th><th>Total</th></tr>
  {{range .Summary.Lines}}
  <tr>
    <td>{{.ProductName}}</td>
    <td>{{.Model}}</td>
    <td>{{.Quantity}}</td>
    <td>{{printf "%.2f" .UnitPrice}}</td>
    <td>{{printf "%.2f" .LineTotal}}</td>
  </tr>
  {{end}}
</table>
<p>Items: <b>{{.Summary.TotalItems}}</b> &middot; Order total: <b>{{printf "%.2f" .Summary.TotalAmount}}</b></p>
<p><small>{{.AppName}} &middot; Sent at {{.SentAt}}</small></p>
`))

func renderLowStock(appName, appURL string, product model.Product, threshold int) (string, error) {
	return render(lowStockTmpl, map[string]any{
		"AppName":   appName,
		"AppURL":    appURL,
		"Product":   product,
		"Threshold": threshold,
		"SentAt":    formatSentAt(),
	})
}

func renderNewProduct(appName, appURL string, product model.Product) (string, error) {
	return render(newProductTmpl, map[string]any{
		"AppName": appName,
		"AppURL":  appURL,
		"Product": product,
		"SentAt":  formatSentAt(),
	})
}

func renderReplenished(appName string, product model.Product, quantityAdded int) (string, error) {
	return render(replenishedTmpl, map[string]any{
		"AppName":       appName,
		"Product":       product,
		"QuantityAdded": quantityAdded,
		"SentAt":        formatSentAt(),
	})
}

func renderOrderConfirmation(appName string, customer Customer, summary OrderSummary) (string, error) {
	return render(orderConfirmedTmpl, map[string]any{
		"AppName":  appName,
		"Customer": customer,
		"Summary":  summary,
		"SentAt":   formatSentAt(),
	})
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
