package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"

	"github.com/skip2/go-qrcode"
)

const (
	confirmationSubject = "Reserva confirmada"
	voucherContentID    = "voucher"
	voucherSize         = 256
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body>
<p>Olá, {{.Name}}!</p>
<p>Seu pagamento foi confirmado e sua reserva está garantida.</p>
<ul>
<li>Atividade: {{.Activity}}</li>
<li>Data: {{.Date}}</li>
<li>Horário: {{.TimeSlot}}</li>
<li>Participantes: {{.PartySize}}</li>
<li>Reserva: {{.ReservationID}}</li>
</ul>
<p>Apresente o código abaixo no check-in:</p>
<img src="cid:` + voucherContentID + `" alt="voucher" width="256" height="256">
</body>
</html>
`))

// buildConfirmationMessage renders a multipart/related message with the HTML
// body and a QR voucher of the reservation id as an inline image.
func buildConfirmationMessage(from string, c Confirmation) ([]byte, error) {
	var html bytes.Buffer
	if err := confirmationTemplate.Execute(&html, c); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	voucher, err := qrcode.Encode(c.ReservationID, qrcode.Medium, voucherSize)
	if err != nil {
		return nil, fmt.Errorf("encode voucher: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/html; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(htmlPart)
	if _, err := qp.Write(html.Bytes()); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	imgPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"image/png"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-ID":                {"<" + voucherContentID + ">"},
		"Content-Disposition":       {`inline; filename="voucher.png"`},
	})
	if err != nil {
		return nil, err
	}
	if err := writeBase64Lines(imgPart, voucher); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", c.Email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", confirmationSubject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/related; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

// RFC 2045 limits encoded lines to 76 characters.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
