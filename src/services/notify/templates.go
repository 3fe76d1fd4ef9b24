package notify

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"nextglide-backend/src/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTmpl = template.Must(
	template.New("email").
		Funcs(template.FuncMap{
			"nl2br": func(s string) template.HTML {
				lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
				for i, l := range lines {
					lines[i] = template.HTMLEscapeString(l)
				}
				return template.HTML(strings.Join(lines, "<br>"))
			},
		}).
		ParseFS(templateFS, "templates/*.html"),
)

type WelcomeData struct {
	Name string
	Year int
}

type CustomData struct {
	Message string
	Year    int
}

type ResponseRow struct {
	Question string
	Answer   string
}

type ApplicationReceiptData struct {
	FullName     string
	Email        string
	DisplayName  string
	TypeLabel    string
	Responses    []ResponseRow
	Requirements string
	Year         int
}

type JobReceiptData struct {
	Name     string
	JobTitle string
	Year     int
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderWelcome(name string) (string, error) {
	return render("welcome.html", WelcomeData{Name: name, Year: time.Now().Year()})
}

func RenderCustom(message string) (string, error) {
	return render("custom.html", CustomData{Message: message, Year: time.Now().Year()})
}

func RenderApplicationReceipt(inq *models.Inquiry) (string, error) {
	rows := make([]ResponseRow, 0, len(inq.CustomResponses))
	for _, r := range inq.CustomResponses {
		rows = append(rows, ResponseRow{Question: r.Question, Answer: r.Answer.Text()})
	}
	display := inq.DisplayName()
	if display == "" {
		display = "Application"
	}
	return render("application_receipt.html", ApplicationReceiptData{
		FullName:     inq.FullName,
		Email:        inq.Email,
		DisplayName:  display,
		TypeLabel:    inq.TypeLabel(),
		Responses:    rows,
		Requirements: inq.Requirements,
		Year:         time.Now().Year(),
	})
}

func RenderJobReceipt(name, jobTitle string) (string, error) {
	return render("job_receipt.html", JobReceiptData{Name: name, JobTitle: jobTitle, Year: time.Now().Year()})
}
