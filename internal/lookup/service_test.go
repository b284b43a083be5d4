package lookup

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/sy-number-bot/internal/contacts"
	observemetrics "github.com/wolfman30/sy-number-bot/internal/observability/metrics"
	"github.com/wolfman30/sy-number-bot/pkg/logging"
)

type stubRepository struct {
	contact *contacts.Contact
	err     error
	panics  bool
	lastKey string
}

func (s *stubRepository) FindByPhone(_ context.Context, phone string) (*contacts.Contact, error) {
	s.lastKey = phone
	if s.panics {
		panic("driver exploded")
	}
	return s.contact, s.err
}

func newTestService(t *testing.T, repo contacts.Repository) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	svc := NewService(Config{
		Contacts: repo,
		Metrics:  observemetrics.NewLookupMetrics(prometheus.NewRegistry()),
		Logger:   logging.NewWithWriter("debug", &buf),
	})
	return svc, &buf
}

func TestAnswerSeededContact(t *testing.T) {
	svc, _ := newTestService(t, contacts.NewInMemoryRepository(contacts.DefaultSeed...))

	reply := svc.Answer(context.Background(), "0933123456")

	assert.Contains(t, reply, "محمد أحمد")
	assert.Contains(t, reply, LabelMobile)
	assert.Contains(t, reply, "+963933123456")
}

func TestAnswerUnseededNumber(t *testing.T) {
	svc, _ := newTestService(t, contacts.NewInMemoryRepository(contacts.DefaultSeed...))

	reply := svc.Answer(context.Background(), "0999 111 222")

	assert.Contains(t, reply, "+963999111222")
	assert.Contains(t, reply, LabelMobile)
	assert.Contains(t, reply, "غير موجود")
}

func TestAnswerLandline(t *testing.T) {
	svc, _ := newTestService(t, contacts.NewInMemoryRepository(contacts.DefaultSeed...))

	reply := svc.Answer(context.Background(), "011-2345678")

	assert.Contains(t, reply, "مكتب دمشق")
	assert.Contains(t, reply, LabelLandline)
}

func TestAnswerRejections(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	assert.Equal(t, MsgWrongRegion, svc.Answer(context.Background(), "+1 202 555 0123"))
	assert.Equal(t, MsgUnparseable, svc.Answer(context.Background(), "abc"))
	assert.Empty(t, repo.lastKey, "rejected numbers must not reach the repository")
}

func TestAnswerRepositoryError(t *testing.T) {
	svc, logs := newTestService(t, &stubRepository{err: errors.New("contacts: find by phone: connection refused")})

	reply := svc.Answer(context.Background(), "0933123456")

	assert.Equal(t, MsgInternalError+"contacts: find by phone: connection refused", reply)
	assert.Contains(t, logs.String(), "lookup failed")
}

func TestAnswerRecoversPanic(t *testing.T) {
	svc, logs := newTestService(t, &stubRepository{panics: true})

	reply := svc.Answer(context.Background(), "933123456")

	require.Contains(t, reply, MsgInternalError)
	assert.Contains(t, reply, "driver exploded")
	assert.Contains(t, logs.String(), "lookup panicked")
}

func TestAnswerLooksUpCanonicalForm(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	svc.Answer(context.Background(), "963 944 556 677")

	assert.Equal(t, "+963944556677", repo.lastKey)
}

func TestNewServiceRequiresRepository(t *testing.T) {
	assert.Panics(t, func() { NewService(Config{}) })
}
