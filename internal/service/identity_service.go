package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"zkpark/internal/entities"
	apperrors "zkpark/internal/errors"
	"zkpark/internal/repository"
)

const (
	msgExtractFailed = "Failed to extract name and DOB from the ID."
	msgIssueFailed   = "Failed to send details to Humanity API."
	msgVerified      = "Your ID has been verified!"
)

var (
	// Name stays on its line so the label of the next field is not swallowed.
	nameRe = regexp.MustCompile(`(?i)Name\s*[:\-]?[ \t]*([A-Za-z][A-Za-z \t]*)`)
	dobRe  = regexp.MustCompile(`(?i)Date\s*of\s*Birth\s*[:\-\s]*([\d/\-]+)`)
)

// ExtractLicenseDetails pulls the holder's name and date of birth out of OCR text.
func ExtractLicenseDetails(text string) (entities.LicenseDetails, bool) {
	nameMatch := nameRe.FindStringSubmatch(text)
	dobMatch := dobRe.FindStringSubmatch(text)
	if nameMatch == nil || dobMatch == nil {
		return entities.LicenseDetails{}, false
	}
	name := strings.TrimSpace(nameMatch[1])
	dob := strings.TrimSpace(dobMatch[1])
	if name == "" || dob == "" {
		return entities.LicenseDetails{}, false
	}
	return entities.LicenseDetails{Name: name, DOB: dob}, true
}

// IdentityService verifies an ID image: text detection, field extraction, credential issuance.
type IdentityService struct {
	users    repository.UserRepository
	detector TextDetector
	issuer   CredentialIssuer
}

func NewIdentityService(users repository.UserRepository, detector TextDetector, issuer CredentialIssuer) *IdentityService {
	return &IdentityService{users: users, detector: detector, issuer: issuer}
}

func (s *IdentityService) VerifyID(ctx context.Context, email string, image []byte) (*entities.VerificationResult, error) {
	if len(image) == 0 {
		return nil, apperrors.ErrBadRequest("Please select an ID image.")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.WalletAddr.Valid || user.WalletAddr.String == "" {
		return nil, apperrors.ErrBadRequest("Please connect a wallet before verifying your ID.")
	}

	text, err := s.detector.DetectText(ctx, image)
	if err != nil {
		// A failed detection is treated like an unreadable image.
		log.Printf("Error calling text detection for %s: %v", email, err)
		text = ""
	}

	details, ok := ExtractLicenseDetails(text)
	if !ok {
		log.Printf("Extraction failed for %s; extracted text: %q", email, text)
		return nil, apperrors.ErrUnprocessable(msgExtractFailed)
	}

	_, err = s.issuer.Issue(ctx, entities.CredentialRequest{
		SubjectAddress: user.WalletAddr.String,
		Claims: map[string]string{
			"kyc":  "passed",
			"name": details.Name,
			"dob":  details.DOB,
		},
	})
	if err != nil {
		log.Printf("Error sending to Humanity API: %v", err)
		return nil, apperrors.ErrBadGateway(msgIssueFailed)
	}

	return &entities.VerificationResult{
		Details:       details,
		ExtractedText: text,
		Status:        msgVerified,
	}, nil
}
