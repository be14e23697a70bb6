// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package zimbra provides a client for the Zimbra SOAP API.

The client builds request documents with package request, posts them with
package transport and parses the answers with package response.

# Client Creation

	client, err := zimbra.NewClient(&zimbra.ClientConfig{
	    URL:              "https://mail.example.com/service/soap",
	    HTTPSConfig:      transport.DefaultHTTPSConfig(),
	    UserAgentName:    "zmsoap",
	    UserAgentVersion: "1.0",
	})

# Authentication

Authenticate with a domain preauth key or a password. The returned token is
stored and added to the context of every later request:

	token, err := client.Authenticate(ctx, zimbra.Credentials{
	    Account:    "user@example.com",
	    PreAuthKey: key,
	})

# Sending Requests

	doc, err := client.NewRequest()
	if err != nil {
	    return err
	}
	doc.AddRequest("GetInfoRequest", markup.Pairs{markup.KV("sections", "mbox")}, request.NsZimbraAccount)

	resp, err := client.Send(ctx, doc)

A fault in a non-batch response is returned as *response.FaultError along
with the parsed response. Faults inside a batch are reported per request
through response.FaultFor.

# References

  - Zimbra SOAP API: https://files.zimbra.com/docs/soap_api/
  - Preauth: https://wiki.zimbra.com/wiki/Preauth
*/
package zimbra
