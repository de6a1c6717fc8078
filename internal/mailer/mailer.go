package mailer

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"

	"github.com/commerceblock/mainstay-api/internal/models"
)

// Mailer sends the administrative "new signup" notification. Delivery is
// best effort; callers dispatch it off the request path.
type Mailer struct {
	host        string
	port        int
	username    string
	password    string
	fromName    string
	fromAddress string
	adminEmail  string
}

// NewFromConfig builds a Mailer from the smtp_* and signup_admin_email
// configuration keys.
func NewFromConfig() *Mailer {
	return &Mailer{
		host:        viper.GetString("smtp_host"),
		port:        viper.GetInt("smtp_port"),
		username:    viper.GetString("smtp_user"),
		password:    viper.GetString("smtp_password"),
		fromName:    viper.GetString("smtp_from_name"),
		fromAddress: viper.GetString("smtp_from_address"),
		adminEmail:  viper.GetString("signup_admin_email"),
	}
}

// NotifySignup emails the admin address a summary of the new signup.
func (m *Mailer) NotifySignup(signup *models.ClientSignup) error {
	if m.adminEmail == "" {
		return fmt.Errorf("signup_admin_email not configured")
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<b>First Name</b>: %s<br>", signup.FirstName)
	fmt.Fprintf(&body, "<b>Last Name</b>: %s<br>", signup.LastName)
	fmt.Fprintf(&body, "<b>Email</b>: %s<br>", signup.Email)
	if signup.Company != "" {
		fmt.Fprintf(&body, "<b>Company</b>: %s<br>", signup.Company)
	}
	if signup.Pubkey != "" {
		fmt.Fprintf(&body, "<b>Public Key</b>: %s<br>", signup.Pubkey)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	msg.SetHeader("To", m.adminEmail)
	msg.SetHeader("Subject", "New SignUp")
	msg.SetBody("text/html", body.String())

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(msg)
}
