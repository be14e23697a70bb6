// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport posts SOAP documents to a Zimbra server over HTTPS.

# TLS Configuration

The default configuration allows TLS 1.2 and TLS 1.3:

	config := transport.DefaultHTTPSConfig()
	// MinTLSVersion: TLS 1.2
	// MaxTLSVersion: TLS 1.3

For TLS 1.2, the following cipher suites are used:
  - TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256
  - TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256

# Client Usage

	client := transport.NewHTTPSClient(&transport.HTTPSConfig{
	    MinTLSVersion: transport.TLS12,
	    RootCAs:       certPool,
	    Timeout:       30 * time.Second,
	})

	body, err := client.Send(ctx, "https://mail.example.com/service/soap", doc, transport.ContentTypeSOAP)

# Status Errors

Zimbra reports SOAP faults with HTTP status 500. Send returns the response
body together with a *StatusError for any non-2xx status so that the caller
can still parse the fault:

	body, err := client.Send(ctx, url, doc, transport.ContentTypeSOAP)
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
	    resp, _ := response.Parse(body)
	    ...
	}

# Compression

Setting HTTPSConfig.Compression gzips request bodies above its threshold.
Responses with "Content-Encoding: gzip" are decoded.

# References

  - Zimbra SOAP API: https://files.zimbra.com/docs/soap_api/
  - TLS 1.3 RFC 8446: https://datatracker.ietf.org/doc/html/rfc8446
*/
package transport
