package entities

type Profile struct {
	Email         string  `json:"email"`
	DisplayName   string  `json:"display_name"`
	WalletAddress *string `json:"wallet_address"`
	Rewards       string  `json:"rewards"`
}

type LicenseDetails struct {
	Name string `json:"name"`
	DOB  string `json:"dob"`
}

// CredentialRequest is the body sent to the credential issuer.
type CredentialRequest struct {
	SubjectAddress string            `json:"subject_address"`
	Claims         map[string]string `json:"claims"`
}

type VerificationResult struct {
	Details       LicenseDetails `json:"details"`
	ExtractedText string         `json:"extracted_text"`
	Status        string         `json:"status"`
}
