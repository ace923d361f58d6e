package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/internal/testutil"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeUploader) UploadBytes(ctx context.Context, folder, filename string, b []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.calls = append(f.calls, folder+"/"+filename)
	return "/mock-storage/" + filename, nil
}

type fakeProducer struct {
	mu     sync.Mutex
	events []dto.SubmissionEvent
	err    error
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	var evt dto.SubmissionEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		return err
	}
	f.events = append(f.events, evt)
	return nil
}

type submissionFixture struct {
	svc      SubmissionService
	repo     repository.SubmissionRepository
	uploader *fakeUploader
	producer *fakeProducer
}

func newSubmissionFixture(t *testing.T) submissionFixture {
	repo := repository.NewSubmissionRepository(testutil.NewDB(t))
	up := &fakeUploader{}
	prod := &fakeProducer{}
	return submissionFixture{
		svc:      NewSubmissionService(repo, up, prod, 1024),
		repo:     repo,
		uploader: up,
		producer: prod,
	}
}

func validForm() dto.SubmissionForm {
	return dto.SubmissionForm{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Method:          "crypto",
		Amount:          "150.25",
		TxID:            "0xabc",
		SelectedNetwork: "eth",
	}
}

func idFile() dto.SubmissionFiles {
	return dto.SubmissionFiles{IDFile: &dto.UploadFile{Filename: "passport.png", Bytes: testutil.PNGBytes}}
}

func TestCreateStoresPendingSubmission(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Second)

	files := idFile()
	files.PaymentProof = &dto.UploadFile{Filename: "receipt.pdf", Bytes: testutil.PDFBytes}

	res, err := f.svc.Create(ctx, validForm(), files)
	require.NoError(t, err)
	assert.Len(t, res.ID, 32)

	sub, err := f.repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusPending, sub.Status)
	assert.Equal(t, domain.PaymentMethodCrypto, sub.Method)
	assert.Equal(t, "150.25", sub.Amount.Decimal.StringFixed(2))
	assert.Equal(t, "/mock-storage/passport.png", *sub.IDFileURL)
	assert.Equal(t, "/mock-storage/receipt.pdf", *sub.PaymentProofURL)
	assert.Equal(t, "eth", *sub.SelectedNetwork)
	assert.False(t, sub.CreatedAt.Before(before))

	assert.Equal(t, []string{"claims/id-files/passport.png", "claims/payment-proofs/receipt.pdf"}, f.uploader.calls)
	require.Len(t, f.producer.events, 1)
	assert.Equal(t, dto.EventSubmissionCreated, f.producer.events[0].Type)
	assert.Equal(t, res.ID, f.producer.events[0].SubmissionID)
}

func TestCreateIDsAreUnique(t *testing.T) {
	f := newSubmissionFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		res, err := f.svc.Create(context.Background(), validForm(), idFile())
		require.NoError(t, err)
		assert.False(t, seen[res.ID])
		seen[res.ID] = true
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(form *dto.SubmissionForm, files *dto.SubmissionFiles)
		wantMsg string
	}{
		{"missing id file", func(_ *dto.SubmissionForm, files *dto.SubmissionFiles) { files.IDFile = nil }, "Missing fields: idFile"},
		{"empty id file", func(_ *dto.SubmissionForm, files *dto.SubmissionFiles) { files.IDFile.Bytes = nil }, "Missing fields: idFile"},
		{"missing fields listed together", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) {
			form.Name, form.Amount = " ", ""
		}, "Missing fields: name, amount"},
		{"bad email", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Email = "jane@example" }, "Invalid email"},
		{"bad method", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Method = "cash" }, "Invalid method"},
		{"zero amount", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "0" }, "Invalid amount"},
		{"negative amount", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "-5" }, "Invalid amount"},
		{"amount rounds to zero", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "0.001" }, "Invalid amount"},
		{"non numeric amount", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "NaN" }, "Invalid amount"},
		{"amount overflows column", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "1e30" }, "Invalid amount"},
		{"huge exponent", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "1e100000000" }, "Invalid amount"},
		{"tiny exponent", func(form *dto.SubmissionForm, _ *dto.SubmissionFiles) { form.Amount = "1e-100000000" }, "Invalid amount"},
		{"text id file", func(_ *dto.SubmissionForm, files *dto.SubmissionFiles) {
			files.IDFile.Bytes = testutil.TextBytes
		}, "only images and PDFs allowed"},
		{"text proof", func(_ *dto.SubmissionForm, files *dto.SubmissionFiles) {
			files.PaymentProof = &dto.UploadFile{Filename: "proof.png", Bytes: testutil.TextBytes}
		}, "only images and PDFs allowed"},
		{"too large", func(_ *dto.SubmissionForm, files *dto.SubmissionFiles) {
			files.IDFile.Bytes = append(append([]byte{}, testutil.PNGBytes...), make([]byte, 2048)...)
		}, "file too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmissionFixture(t)
			form, files := validForm(), idFile()
			tt.mutate(&form, &files)

			_, err := f.svc.Create(context.Background(), form, files)
			require.Error(t, err)
			assert.ErrorIs(t, err, errno.ErrValidation)
			assert.Equal(t, tt.wantMsg, err.Error())

			n, err := f.repo.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n, "no record on validation failure")
			assert.Empty(t, f.uploader.calls, "no file written on validation failure")
		})
	}
}

func TestCreateMethodIsCaseInsensitive(t *testing.T) {
	f := newSubmissionFixture(t)
	form := validForm()
	form.Method = " WIRE "

	res, err := f.svc.Create(context.Background(), form, idFile())
	require.NoError(t, err)

	sub, err := f.repo.FindByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodWire, sub.Method)
}

func TestCreateUploadFailureIsServerError(t *testing.T) {
	f := newSubmissionFixture(t)
	f.uploader.err = errors.New("disk full")

	_, err := f.svc.Create(context.Background(), validForm(), idFile())
	assert.ErrorIs(t, err, errno.ErrServer)
	assert.Equal(t, "Server error", err.Error())
}

func TestCreateSurvivesBrokerFailure(t *testing.T) {
	f := newSubmissionFixture(t)
	f.producer.err = errors.New("broker down")

	res, err := f.svc.Create(context.Background(), validForm(), idFile())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestCreateWithoutProducer(t *testing.T) {
	repo := repository.NewSubmissionRepository(testutil.NewDB(t))
	svc := NewSubmissionService(repo, &fakeUploader{}, nil, 1024)

	_, err := svc.Create(context.Background(), validForm(), idFile())
	require.NoError(t, err)
}

func TestListNewestFirstWithCanonicalFields(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	old := &domain.Submission{
		ID:        "legacy1",
		Method:    domain.PaymentMethodWire,
		Status:    domain.SubmissionStatusConfirmed,
		CreatedAt: time.Date(2023, 5, 1, 10, 30, 0, 123000000, time.UTC),
	}
	require.NoError(t, f.repo.Create(ctx, old))

	res, err := f.svc.Create(ctx, validForm(), idFile())
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, res.ID, list[0].ID)
	assert.Equal(t, "pending", list[0].Status)
	require.NotNil(t, list[0].Amount)
	assert.Equal(t, "150.25", *list[0].Amount)
	require.NotNil(t, list[0].IDFileURL)
	assert.Nil(t, list[0].PaymentProofURL)
	assert.True(t, strings.HasSuffix(list[0].CreatedAt, "Z"))

	assert.Equal(t, "legacy1", list[1].ID)
	assert.Equal(t, "2023-05-01T10:30:00.123Z", list[1].CreatedAt)
	assert.Nil(t, list[1].Amount)
	assert.Nil(t, list[1].Name)
}

func TestSetStatus(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, validForm(), idFile())
	require.NoError(t, err)

	err = f.svc.SetStatus(ctx, res.ID, "bogus")
	assert.ErrorIs(t, err, errno.ErrValidation)
	err = f.svc.SetStatus(ctx, res.ID, "pending")
	assert.ErrorIs(t, err, errno.ErrValidation)

	sub, err := f.repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusPending, sub.Status, "rejected update leaves status unchanged")

	require.NoError(t, f.svc.SetStatus(ctx, res.ID, " Confirmed "))
	require.NoError(t, f.svc.SetStatus(ctx, res.ID, "confirmed"), "second confirm is a no-op")

	sub, err = f.repo.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusConfirmed, sub.Status)

	// created + one confirmed; the repeat emits nothing
	require.Len(t, f.producer.events, 2)
	assert.Equal(t, dto.EventSubmissionConfirmed, f.producer.events[1].Type)
	assert.Equal(t, "confirmed", f.producer.events[1].Status)

	err = f.svc.SetStatus(ctx, "does-not-exist", "confirmed")
	assert.ErrorIs(t, err, errno.ErrNotFound)
}

func TestAllowedFileType(t *testing.T) {
	assert.True(t, AllowedFileType(testutil.PNGBytes))
	assert.True(t, AllowedFileType(testutil.PDFBytes))
	assert.False(t, AllowedFileType(testutil.TextBytes))
	assert.False(t, AllowedFileType([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)))
}

func TestStoredFilenameFollowsContent(t *testing.T) {
	scripted := append(append([]byte{}, testutil.PNGBytes...), []byte("<script>alert(1)</script>")...)

	assert.Equal(t, "evil.png", StoredFilename("evil.html", scripted))
	assert.Equal(t, "receipt.pdf", StoredFilename("receipt.pdf", testutil.PDFBytes))
	assert.Equal(t, "scan.png", StoredFilename("scan", testutil.PNGBytes))
	assert.Equal(t, "file.png", StoredFilename(".html", testutil.PNGBytes))
}

func TestCreateStoresSniffedExtension(t *testing.T) {
	f := newSubmissionFixture(t)
	files := dto.SubmissionFiles{IDFile: &dto.UploadFile{Filename: "id.html", Bytes: testutil.PNGBytes}}

	_, err := f.svc.Create(context.Background(), validForm(), files)
	require.NoError(t, err)
	assert.Equal(t, []string{"claims/id-files/id.png"}, f.uploader.calls)
}
