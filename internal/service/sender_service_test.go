package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zkpark/internal/entities"
)

func emailData() entities.ReservationEmailData {
	return entities.ReservationEmailData{
		UserEmail:   "ana@example.com",
		UserName:    "Ana",
		SessionID:   "sess-1",
		SpotTitle:   "Wilson Blvd",
		Vehicle:     "Tesla Model 3",
		Date:        "2025-03-23",
		FromTime:    "09:00",
		ToTime:      "12:00",
		TotalFee:    "6.25",
		CurrentYear: 2025,
	}
}

func TestBuildReservationEmail(t *testing.T) {
	subject, plain, html, err := BuildReservationEmail(emailData())
	require.NoError(t, err)
	assert.Equal(t, "Your ZKpark reservation is confirmed - Session: sess-1", subject)
	assert.Contains(t, plain, "Time: 09:00 - 12:00")
	assert.Contains(t, plain, "Total: $6.25")
	assert.Contains(t, html, "Wilson Blvd")
	assert.Contains(t, html, "2025 ZKpark")
}

func TestSenderService_SendsInBackground(t *testing.T) {
	var wg sync.WaitGroup
	var got *mail.SGMailV3
	wg.Add(1)
	s := &SenderService{fromEmail: "noreply@zkpark.app", fromName: "ZKpark", send: func(m *mail.SGMailV3) error {
		defer wg.Done()
		got = m
		return errors.New("rate limited")
	}}

	s.SendReservationEmail(emailData())

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("email was not sent")
	}
	require.NotNil(t, got)
	assert.Equal(t, "noreply@zkpark.app", got.From.Address)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "ana@example.com", got.Personalizations[0].To[0].Address)
}

func TestSenderService_Unconfigured(t *testing.T) {
	s := NewSenderService("", "", "ZKpark")
	assert.Nil(t, s.send)
	s.SendReservationEmail(emailData())
}
