package mailer

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRescheduleProposal(toEmail, serviceName string, currentDate, proposedDate time.Time, reason string) error
	SendRescheduleResolution(toEmail, serviceName string, accepted bool, finalDate time.Time) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	frontendURL := os.Getenv("CLIENT_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendRescheduleProposal(toEmail, serviceName string, currentDate, proposedDate time.Time, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Proposta de nova data para o seu serviço")

	portalLink := fmt.Sprintf("%s/portal/confirmacoes", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Alteração de data proposta</h2>
			<p>O serviço <strong>%s</strong> agendado para <strong>%s</strong> tem uma nova data proposta:</p>
			<h1 style="color: #007BFF;">%s</h1>
			<p>Motivo: %s</p>
			<p>Acesse o portal para aceitar ou recusar:</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Responder no portal</a>
		</div>
	`, serviceName, currentDate.Format("02/01/2006"), proposedDate.Format("02/01/2006"), reason, portalLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send reschedule proposal to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Reschedule proposal sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendRescheduleResolution(toEmail, serviceName string, accepted bool, finalDate time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)

	var subject, headline string
	if accepted {
		subject = "Nova data confirmada"
		headline = "O cliente aceitou a nova data."
	} else {
		subject = "Proposta de nova data recusada"
		headline = "O cliente recusou a nova data. O agendamento original permanece."
	}
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>Serviço: <strong>%s</strong></p>
			<p>Data vigente: <strong>%s</strong></p>
		</div>
	`, headline, serviceName, finalDate.Format("02/01/2006"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send reschedule resolution to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
