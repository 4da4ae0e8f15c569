package config

import (
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_NewConfigurationInstance_appliesDefaults(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
port: 8080
`)
	sut := NewConfigurationInstance(raw)

	assertion.Equal(8080, sut.Global().HttpPort())
	assertion.Equal(log.InfoLevel, sut.Global().LogLevel())
	assertion.Equal(int64(0), sut.Global().InitialOffset())

	assertion.False(sut.TimeSync().IsEnabled())
	assertion.Equal(SyncModeDateHeader, sut.TimeSync().Mode)
	assertion.Equal(DefaultSyncTimeout, sut.TimeSync().Timeout)
	assertion.Equal(uint64(DefaultMaxResponseSize), sut.TimeSync().MaxResponseSize)
	assertion.NotNil(sut.TimeSync().Schedule)

	assertion.Nil(sut.Anchor())
	assertion.Nil(sut.Http().BasicAuth)
	assertion.Nil(sut.Http().Tls)
}

func Test_NewConfigurationInstance_parsesTimeSync(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
log_level: debug
offset: -1500
time_sync:
  url: https://time.example.com/now
  mode: text
  schedule: "0 * * * *"
  timeout: 3s
  max_response_size: 1KB
`)
	sut := NewConfigurationInstance(raw)
	sync := sut.TimeSync()

	assertion.Equal(log.DebugLevel, sut.Global().LogLevel())
	assertion.Equal(int64(-1500), sut.Global().InitialOffset())
	assertion.True(sync.IsEnabled())
	assertion.Equal("https://time.example.com/now", sync.URL)
	assertion.Equal(SyncModeText, sync.Mode)
	assertion.Equal(3*time.Second, sync.Timeout)
	assertion.Equal(uint64(1024), sync.MaxResponseSize)

	from := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)
	assertion.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), sync.Schedule.Next(from))
}

func Test_NewConfigurationInstance_fallsBackOnInvalidTimeSyncValues(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
time_sync:
  url: https://time.example.com/now
  mode: ntp
  schedule: "every now and then"
  timeout: soon
`)
	sync := NewConfigurationInstance(raw).TimeSync()

	assertion.Equal(SyncModeDateHeader, sync.Mode)
	assertion.Equal(DefaultSyncTimeout, sync.Timeout)

	from := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)
	assertion.Equal(time.Date(2024, 3, 5, 9, 15, 0, 0, time.UTC), sync.Schedule.Next(from))
}

func Test_NewConfigurationInstance_localAnchor(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
anchor:
  path: /var/lib/shortcal/anchor
`)
	anchor := NewConfigurationInstance(raw).Anchor()

	if assertion.NotNil(anchor) {
		assertion.True(anchor.IsLocal())
		assertion.Equal("/var/lib/shortcal/anchor", anchor.Path)
	}
}

func Test_NewConfigurationInstance_s3AnchorWithInterpolatedSecrets(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("ANCHOR_SECRET", "s3cr3t")

	raw, _ := ParseFromString(`
anchor:
  bucket: devices
  endpoint: http://minio:9000
  force_path_style: true
  access_key_id: gateway
  secret_access_key: __${ANCHOR_SECRET}__
  verify_credentials: true
`)
	anchor := NewConfigurationInstance(raw).Anchor()

	if assertion.NotNil(anchor) {
		assertion.False(anchor.IsLocal())
		assertion.Equal("devices", anchor.Bucket)
		assertion.Equal(DefaultAnchorKey, anchor.Key)
		assertion.Equal("eu-central-1", anchor.Region)
		assertion.Equal("http://minio:9000", anchor.Endpoint)
		assertion.True(anchor.ForcePathStyle)
		assertion.Equal("gateway", anchor.AccessKey)
		assertion.Equal("s3cr3t", anchor.SecretKey)
		assertion.True(anchor.VerifyCredentials)
	} else {
		spew.Dump(raw)
	}
}

func Test_NewConfigurationInstance_incompleteAnchorIsIgnored(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
anchor:
  region: eu-west-1
`)

	assertion.Nil(NewConfigurationInstance(raw).Anchor())
}

func Test_NewConfigurationInstance_http(t *testing.T) {
	assertion := assert.New(t)

	raw, _ := ParseFromString(`
http:
  basic_auth:
    username: admin
    password: secret
  tls:
    certificate: /etc/ssl/cert.pem
    private_key: /etc/ssl/key.pem
    strict: true
`)
	http := NewConfigurationInstance(raw).Http()

	if assertion.NotNil(http.BasicAuth) {
		assertion.Equal("admin", http.BasicAuth.Username)
		assertion.Equal("secret", http.BasicAuth.Password)
	}
	if assertion.NotNil(http.Tls) {
		assertion.Equal("/etc/ssl/cert.pem", http.Tls.CertificatePath)
		assertion.Equal("/etc/ssl/key.pem", http.Tls.PrivateKeyPath)
		assertion.True(http.Tls.IsStrict)
	}
}
