package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	html_tpl "html/template"
	text_tpl "text/template"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/utils"
	"github.com/wneessen/go-mail"
)

type EmailOpts struct {
	Subject      string   `json:"subject"`
	TemplateName string   `json:"template_name"`
	ToList       []string `json:"to_list"`
	CCList       []string `json:"cc_list"`
}

func (e EmailOpts) IsValid() bool {
	return len(e.Subject) > 0 && len(e.TemplateName) > 0 && len(e.ToList) > 0
}

func SendEmail(opts EmailOpts, data map[string]interface{}) error {
	if len(os.Getenv("EMAIL_FROM")) < 1 {
		return errors.New("The from email address is invalid.")
	}

	if !opts.IsValid() {
		return errors.New("Missing information to send email.")
	}

	tplBase := filepath.Clean(filepath.Join("templates", "email", opts.TemplateName))

	htmlTplFile := filepath.Clean(tplBase + ".html")
	htmlTpl, err := html_tpl.New(filepath.Base(htmlTplFile)).ParseFiles(htmlTplFile)
	if err != nil {
		return fmt.Errorf("Error loading the HTML template: %w", err)
	}

	textTplFile := filepath.Clean(tplBase + ".txt")
	textTpl, err := text_tpl.New(filepath.Base(textTplFile)).ParseFiles(textTplFile)
	if err != nil {
		return fmt.Errorf("Error loading the TEXT template: %w", err)
	}

	// Init message
	msg := mail.NewMsg()
	msg.SetMessageID()
	msg.SetDate()
	msg.SetBulk()
	msg.Subject(opts.Subject + " • " + os.Getenv("APP_NAME"))

	if err := msg.FromFormat(os.Getenv("APP_NAME"), os.Getenv("EMAIL_FROM")); err != nil {
		return fmt.Errorf("Could not set the from email address: %w", err)
	}

	// Default values
	data["Lang"] = utils.EmailLang()
	data["AppName"] = os.Getenv("APP_NAME")
	data["AppDescription"] = os.Getenv("APP_DESCRIPTION")
	data["AppDomain"] = os.Getenv("APP_DOMAIN")
	data["Subject"] = opts.Subject
	data["Now"] = time.Now().In(utils.DefaultLocation())

	if err := msg.SetBodyHTMLTemplate(htmlTpl, data); err != nil {
		return fmt.Errorf("Error setting HTML template: %w", err)
	}

	if err := msg.AddAlternativeTextTemplate(textTpl, data); err != nil {
		return fmt.Errorf("Error setting TEXT template: %w", err)
	}

	msg.ToIgnoreInvalid(opts.ToList...)

	if len(opts.CCList) > 0 {
		msg.CcIgnoreInvalid(opts.CCList...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return app.SMTP().DialAndSendWithContext(ctx, msg)
}
