package email

import (
	"context"
	"log"
)

// Sender abstrai o serviço de entrega de e-mails. O template e o transporte
// ficam fora deste backend; aqui só interessa o contrato de envio.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender registra o envio no log em vez de entregar. Usado em
// desenvolvimento e quando nenhum provedor está configurado.
type LogSender struct{}

// NewLogSender cria uma nova instância de LogSender
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send registra a mensagem no log
func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("📧 [EMAIL] to=%s subject=%q", to, subject)
	return nil
}
