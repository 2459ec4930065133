package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const licenseText = "DRIVER LICENSE\nName: Jane Q Public\nDate of Birth: 01/02/1990\nClass C"

func TestExtractLicenseDetails(t *testing.T) {
	details, ok := ExtractLicenseDetails(licenseText)
	require.True(t, ok)
	assert.Equal(t, "Jane Q Public", details.Name)
	assert.Equal(t, "01/02/1990", details.DOB)

	details, ok = ExtractLicenseDetails("name - JOHN DOE\ndate of birth 1985-07-04")
	require.True(t, ok)
	assert.Equal(t, "JOHN DOE", details.Name)
	assert.Equal(t, "1985-07-04", details.DOB)

	_, ok = ExtractLicenseDetails("Name: Jane Q Public")
	assert.False(t, ok)
	_, ok = ExtractLicenseDetails("")
	assert.False(t, ok)
}

func TestIdentityService_VerifyID(t *testing.T) {
	users := newFakeUsers(userWithWallet("ana@example.com", validWallet))
	issuer := &fakeIssuer{}
	svc := NewIdentityService(users, &fakeDetector{text: licenseText}, issuer)

	res, err := svc.VerifyID(context.Background(), "ana@example.com", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "Your ID has been verified!", res.Status)
	assert.Equal(t, licenseText, res.ExtractedText)

	require.NotNil(t, issuer.got)
	assert.Equal(t, validWallet, issuer.got.SubjectAddress)
	assert.Equal(t, map[string]string{"kyc": "passed", "name": "Jane Q Public", "dob": "01/02/1990"}, issuer.got.Claims)
}

func TestIdentityService_VerifyIDFailures(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(userWithWallet("ana@example.com", validWallet), userWithWallet("bob@example.com", ""))

	svc := NewIdentityService(users, &fakeDetector{text: "blurry"}, &fakeIssuer{})
	_, err := svc.VerifyID(ctx, "ana@example.com", []byte("jpeg"))
	assertHTTPError(t, err, http.StatusUnprocessableEntity, "Failed to extract name and DOB from the ID.")

	svc = NewIdentityService(users, &fakeDetector{err: errors.New("quota")}, &fakeIssuer{})
	_, err = svc.VerifyID(ctx, "ana@example.com", []byte("jpeg"))
	assertHTTPError(t, err, http.StatusUnprocessableEntity, "Failed to extract name and DOB from the ID.")

	svc = NewIdentityService(users, &fakeDetector{text: licenseText}, &fakeIssuer{err: errors.New("401")})
	_, err = svc.VerifyID(ctx, "ana@example.com", []byte("jpeg"))
	assertHTTPError(t, err, http.StatusBadGateway, "Failed to send details to Humanity API.")

	_, err = svc.VerifyID(ctx, "bob@example.com", []byte("jpeg"))
	assertHTTPError(t, err, http.StatusBadRequest, "Please connect a wallet before verifying your ID.")

	_, err = svc.VerifyID(ctx, "ana@example.com", nil)
	assertHTTPError(t, err, http.StatusBadRequest, "Please select an ID image.")
}
