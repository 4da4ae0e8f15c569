package config

type HttpConfiguration struct {
	BasicAuth *BasicAuthConfiguration
	Tls       *TlsConfiguration
}

type BasicAuthConfiguration struct {
	Username string
	Password string
}

type TlsConfiguration struct {
	CertificatePath string
	PrivateKeyPath  string
	IsStrict        bool
}

func parseHttp(cfg Raw) *HttpConfiguration {
	http := &HttpConfiguration{}

	if auth := cfg.Sub("basic_auth"); auth != nil {
		http.BasicAuth = &BasicAuthConfiguration{
			Username: auth.String("username"),
			Password: auth.String("password"),
		}
	}

	if tls := cfg.Sub("tls"); tls != nil {
		http.Tls = &TlsConfiguration{
			CertificatePath: tls.String("certificate"),
			PrivateKeyPath:  tls.String("private_key"),
			IsStrict:        tls.Bool("strict"),
		}
	}

	return http
}
