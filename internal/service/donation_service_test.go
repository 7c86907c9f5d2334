package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type donationStore struct {
	donations []models.Donation
}

func (s *donationStore) Create(ctx context.Context, donation *models.Donation) error {
	donation.ID = int64(len(s.donations) + 1)
	donation.CreatedAt = time.Now().UTC()
	s.donations = append(s.donations, *donation)
	return nil
}

func (s *donationStore) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, int, error) {
	var out []models.Donation
	for _, d := range s.donations {
		if filter.ShelterID != nil && (d.ShelterID == nil || *d.ShelterID != *filter.ShelterID) {
			continue
		}
		out = append(out, d)
	}
	return out, len(out), nil
}

func (s *donationStore) ListAll(ctx context.Context) ([]models.Donation, error) {
	return s.donations, nil
}

func TestDonationServiceCreateAnonymous(t *testing.T) {
	store := &donationStore{}
	svc := NewDonationService(store, nil, nil, nil)

	donation, err := svc.Create(context.Background(), nil, DonationRequest{Amount: 2500})
	require.NoError(t, err)
	assert.Nil(t, donation.UserID)
	assert.Equal(t, int64(2500), donation.Amount)
}

func TestDonationServiceCreateValidatesAmount(t *testing.T) {
	svc := NewDonationService(&donationStore{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), nil, DonationRequest{Amount: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Create(context.Background(), nil, DonationRequest{Amount: -500})
	require.Error(t, err)
}

func TestDonationServiceCreateChecksShelter(t *testing.T) {
	shelters := &shelterReaderStub{ids: map[int64]struct{}{1: {}}}
	svc := NewDonationService(&donationStore{}, shelters, nil, nil)

	known := int64(1)
	userID := int64(7)
	donation, err := svc.Create(context.Background(), &userID, DonationRequest{Amount: 1000, ShelterID: &known})
	require.NoError(t, err)
	require.NotNil(t, donation.UserID)
	assert.Equal(t, int64(7), *donation.UserID)

	unknown := int64(42)
	_, err = svc.Create(context.Background(), nil, DonationRequest{Amount: 1000, ShelterID: &unknown})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, "shelter does not exist", appErr.Message)
}

func TestDonationServiceListFiltersByShelter(t *testing.T) {
	store := &donationStore{}
	shelters := &shelterReaderStub{ids: map[int64]struct{}{1: {}, 2: {}}}
	svc := NewDonationService(store, shelters, nil, nil)

	one, two := int64(1), int64(2)
	_, err := svc.Create(context.Background(), nil, DonationRequest{Amount: 1000, ShelterID: &one})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), nil, DonationRequest{Amount: 2000, ShelterID: &two})
	require.NoError(t, err)

	donations, pagination, err := svc.List(context.Background(), models.DonationFilter{ShelterID: &one})
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, int64(1000), donations[0].Amount)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestDonationServiceExportCSV(t *testing.T) {
	store := &donationStore{}
	svc := NewDonationService(store, nil, nil, nil)

	msg := "for the puppies"
	_, err := svc.Create(context.Background(), nil, DonationRequest{Amount: 12345, Message: &msg})
	require.NoError(t, err)

	result, err := svc.Export(context.Background(), ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Body)
	assert.Contains(t, body, "ID,Amount,Shelter ID,User ID,Message,Created At")
	assert.Contains(t, body, "123.45", "amount renders in major units")
	assert.Contains(t, body, "for the puppies")
}

func TestDonationServiceExportPDF(t *testing.T) {
	store := &donationStore{}
	svc := NewDonationService(store, nil, nil, nil)

	_, err := svc.Create(context.Background(), nil, DonationRequest{Amount: 500})
	require.NoError(t, err)

	result, err := svc.Export(context.Background(), ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Body), "%PDF"))
}

func TestDonationServiceExportRejectsUnknownFormat(t *testing.T) {
	svc := NewDonationService(&donationStore{}, nil, nil, nil)

	_, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
