package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dreitier/shortcal/calendar"
	"github.com/stretchr/testify/assert"
)

const callerIdentityResponse = `<GetCallerIdentityResponse xmlns="https://sts.amazonaws.com/doc/2011-06-15/">
  <GetCallerIdentityResult>
    <Arn>arn:aws:iam::123456789012:user/gateway</Arn>
    <UserId>AIDAEXAMPLE</UserId>
    <Account>123456789012</Account>
  </GetCallerIdentityResult>
  <ResponseMetadata>
    <RequestId>01234567-89ab-cdef-0123-456789abcdef</RequestId>
  </ResponseMetadata>
</GetCallerIdentityResponse>`

// fakeObjectStorage serves a single bucket with path style addressing and
// answers STS GetCallerIdentity.
type fakeObjectStorage struct {
	mutex   sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjectStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	if r.Method == http.MethodPost && r.URL.Path == "/" {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, callerIdentityResponse)
		return
	}

	switch r.Method {
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = data
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		data, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>`+
				strings.TrimPrefix(r.URL.Path, "/")+`</Key></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(data)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeObjectStorage) object(path string) []byte {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.objects[path]
}

func newFakeS3Store(t *testing.T) (*S3Store, *fakeObjectStorage) {
	fake := &fakeObjectStorage{objects: make(map[string][]byte)}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return &S3Store{
		Bucket:            "devices",
		Key:               "gateway-1/anchor",
		Region:            "us-east-1",
		AccessKey:         "AKIAEXAMPLE",
		SecretKey:         "secret",
		Endpoint:          server.URL,
		ForcePathStyle:    true,
		VerifyCredentials: true,
	}, fake
}

func Test_S3Store_missingObjectHasNoAnchor(t *testing.T) {
	assertion := assert.New(t)
	sut, _ := newFakeS3Store(t)

	_, err := sut.Load(context.Background())

	assertion.ErrorIs(err, ErrNoAnchor)
}

func Test_S3Store_savesRawPackedValue(t *testing.T) {
	assertion := assert.New(t)
	sut, fake := newFakeS3Store(t)
	dt := calendar.New(2024, 2, 5, 9, 7, 0, 0)

	assertion.NoError(sut.Save(context.Background(), dt))
	assertion.Equal(Encode(dt), fake.object("/devices/gateway-1/anchor"))

	loaded, err := sut.Load(context.Background())
	assertion.NoError(err)
	assertion.Equal(dt, loaded)
}

func Test_S3Store_verifiesCredentials(t *testing.T) {
	assertion := assert.New(t)
	sut, _ := newFakeS3Store(t)

	assertion.NoError(sut.Verify(context.Background()))

	sut.VerifyCredentials = false
	sut.Endpoint = "http://127.0.0.1:1"
	assertion.NoError(sut.Verify(context.Background()))
}
