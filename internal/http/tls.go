package http

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

func getTLSConfig(key string, cert string, cacert string, serverName string, insecure bool) (*tls.Config, error) {
	tlsConfig := &tls.Config{}
	if key != "" {
		keypair, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, fmt.Errorf("fail to load the tls certificates: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{keypair}
	}
	if cacert != "" {
		caCert, err := os.ReadFile(cacert)
		if err != nil {
			return nil, fmt.Errorf("fail to read the tls ca certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("fail to add the ca certificate %s to the pool", cacert)
		}
		tlsConfig.ClientCAs = caCertPool
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}
	if serverName != "" {
		tlsConfig.ServerName = serverName
	}
	tlsConfig.InsecureSkipVerify = insecure
	return tlsConfig, nil
}
