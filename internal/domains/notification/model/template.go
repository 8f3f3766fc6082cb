package model

import (
	"bytes"
	"fmt"
	"html/template"
)

const confirmationTemplate = `<html>
<body>
<h2>Booking Confirmed</h2>
<p>Dear {{ .Booking.LawyerName }},</p>
<p>Your accommodation for the {{ .Conference }} has been confirmed.</p>
<table>
<tr><td>Booking ID</td><td>{{ .Booking.ID }}</td></tr>
<tr><td>Ticket type</td><td>{{ .Booking.TicketType }}</td></tr>
<tr><td>BASL ID</td><td>{{ .Booking.LawyerBaslID }}</td></tr>
<tr><td>NIC</td><td>{{ .Booking.LawyerNIC }}</td></tr>
<tr><td>Phone</td><td>{{ .Booking.LawyerPhone }}</td></tr>
</table>
{{- if .Guests }}
<h3>Additional persons</h3>
<ol>
{{- range .Guests }}
<li>{{ .Name }} (BASL ID {{ .BaslID }}, NIC {{ .NIC }}, {{ .Phone }})</li>
{{- end }}
</ol>
{{- end }}
<p>We look forward to seeing you.</p>
</body>
</html>`

// SubjectConfirmation is prefixed onto the conference name.
const SubjectConfirmation = "Booking Confirmed - "

var confirmation = template.Must(template.New("confirmation").Parse(confirmationTemplate))

// Render produces the HTML body of the confirmation email.
func (c Confirmation) Render() (string, error) {
	var buf bytes.Buffer
	if err := confirmation.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return buf.String(), nil
}

func (c Confirmation) Subject() string {
	return SubjectConfirmation + c.Conference
}
