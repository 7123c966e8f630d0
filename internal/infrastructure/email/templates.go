package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// OrderData feeds the admin notification body for a new order.
type OrderData struct {
	OrderID       string
	ServiceName   string
	CustomerName  string
	CustomerEmail string
	Message       string
	FileURL       string
}

// ContactData feeds the admin notification body for a contact message.
type ContactData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

var orderAdminTmpl = template.Must(template.New("order_admin").Parse(`
<h2>Nouvelle commande reçue</h2>
<p><strong>ID:</strong> {{.OrderID}}</p>
<p><strong>Service:</strong> {{.ServiceName}}</p>
<p><strong>Client:</strong> {{.CustomerName}} ({{.CustomerEmail}})</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
{{if .FileURL}}<p><a href="{{.FileURL}}">Voir le fichier</a></p>{{end}}
<p><a href="{{.AdminURL}}">Voir dans l'admin</a></p>
`))

var orderCustomerTmpl = template.Must(template.New("order_customer").Parse(`
<h2>Merci pour votre commande!</h2>
<p>Bonjour {{.CustomerName}},</p>
<p>Nous avons bien reçu votre demande pour le service <strong>{{.ServiceName}}</strong>.</p>
<p>Notre équipe va examiner votre demande et vous contactera sous peu.</p>
<p>Cordialement,<br>L'équipe OpenDev</p>
`))

var contactTmpl = template.Must(template.New("contact").Parse(`
<h2>Nouveau message de contact</h2>
<p><strong>Sujet:</strong> {{.Subject}}</p>
<p><strong>De:</strong> {{.Name}} ({{.Email}})</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

var verificationTmpl = template.Must(template.New("verification").Parse(`
<h2>Vérifiez votre adresse email</h2>
<p>Bonjour {{.Name}},</p>
<p>Cliquez sur le lien ci-dessous pour activer votre compte :</p>
<p><a href="{{.VerifyURL}}">Vérifier mon email</a></p>
<p>Ce lien expire dans 24 heures.</p>
`))

// OrderAdminEmail renders the admin notification for a new order.
func OrderAdminEmail(baseURL string, d OrderData) (subject, html string) {
	subject = "Nouvelle commande: " + d.ServiceName
	html = render(orderAdminTmpl, struct {
		OrderData
		AdminURL string
	}{d, baseURL + "/admin/orders"})
	return subject, html
}

// OrderCustomerEmail renders the confirmation sent to the order submitter.
func OrderCustomerEmail(customerName, serviceName string) (subject, html string) {
	subject = "Confirmation de votre commande"
	html = render(orderCustomerTmpl, struct {
		CustomerName string
		ServiceName  string
	}{customerName, serviceName})
	return subject, html
}

// ContactEmail renders the admin notification for a contact message.
func ContactEmail(d ContactData) (subject, html string) {
	subject = "Nouveau message: " + d.Subject
	return subject, render(contactTmpl, d)
}

// VerificationEmail renders the account-verification message.
func VerificationEmail(baseURL, name, token string) (subject, html string) {
	subject = "Vérifiez votre adresse email"
	html = render(verificationTmpl, struct {
		Name      string
		VerifyURL string
	}{name, fmt.Sprintf("%s/auth/verify?token=%s", baseURL, token)})
	return subject, html
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Templates are static and parsed at init; execution only fails on
		// writer errors, which bytes.Buffer never returns.
		return ""
	}
	return buf.String()
}
