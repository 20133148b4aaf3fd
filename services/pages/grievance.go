package pages

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"eventkompass/i18n"
	"eventkompass/models"
)

// GrievanceSubject is the topic picked in the contact form.
type GrievanceSubject string

const (
	SubjectBookingIssue      GrievanceSubject = "bookingIssue"
	SubjectOrganizerFeedback GrievanceSubject = "organizerFeedback"
	SubjectTechnicalIssue    GrievanceSubject = "technicalIssue"
	SubjectOther             GrievanceSubject = "other"
)

var GrievanceSubjects = []GrievanceSubject{SubjectBookingIssue, SubjectOrganizerFeedback, SubjectTechnicalIssue, SubjectOther}

// GrievanceRequest is the payload of the contact form.
type GrievanceRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,oneof=bookingIssue organizerFeedback technicalIssue other"`
	Message string `json:"message" binding:"required,min=5,max=4000"`
}

// Grievance is a received message.
type Grievance struct {
	ID         string           `json:"id"`
	SessionID  string           `json:"-"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Subject    GrievanceSubject `json:"subject"`
	Message    string           `json:"message"`
	ReceivedAt time.Time        `json:"receivedAt"`
}

// Receipt is returned to the sender.
type Receipt struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// GrievanceService keeps received messages in memory and logs them for the
// support team.
type GrievanceService struct {
	Logger *zap.Logger

	mu       sync.Mutex
	received []Grievance
}

func NewGrievanceService(logger *zap.Logger) *GrievanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrievanceService{Logger: logger}
}

func (s *GrievanceService) Submit(_ context.Context, sessionID string, req GrievanceRequest, lang models.Language) Receipt {
	g := Grievance{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Name:       req.Name,
		Email:      req.Email,
		Subject:    GrievanceSubject(req.Subject),
		Message:    req.Message,
		ReceivedAt: time.Now(),
	}

	s.mu.Lock()
	s.received = append(s.received, g)
	s.mu.Unlock()

	s.Logger.Info("Grievance received",
		zap.String("id", g.ID),
		zap.String("session", sessionID),
		zap.String("subject", string(g.Subject)),
		zap.String("email", g.Email),
		zap.Int("length", len(g.Message)))

	return Receipt{ID: g.ID, Title: i18n.T(lang, "thankYou"), Message: i18n.T(lang, "messageSuccess")}
}

// Received returns a copy of every stored message.
func (s *GrievanceService) Received() []Grievance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Grievance(nil), s.received...)
}
