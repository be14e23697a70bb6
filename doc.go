// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gozimbra builds and sends Zimbra SOAP requests.

# Overview

go-zimbra produces the SOAP 1.2 documents understood by the Zimbra
Collaboration Server: an envelope whose header carries a "context" block
and whose body carries one request, several requests, or a BatchRequest
in which each request is tagged with a requestId. Request content is
described with plain Go values that map onto XML elements, attributes and
text.

# Package Structure

	github.com/sirosfoundation/go-zimbra/pkg/request     - SOAP request documents and batches
	github.com/sirosfoundation/go-zimbra/pkg/markup      - Go values to XML elements
	github.com/sirosfoundation/go-zimbra/pkg/xmltree     - Ordered element tree and serializer
	github.com/sirosfoundation/go-zimbra/pkg/response    - SOAP response and fault parsing
	github.com/sirosfoundation/go-zimbra/pkg/auth        - Preauth computation
	github.com/sirosfoundation/go-zimbra/pkg/transport   - HTTPS transport with TLS 1.2/1.3
	github.com/sirosfoundation/go-zimbra/pkg/compression - GZIP request bodies
	github.com/sirosfoundation/go-zimbra/pkg/zimbra      - Client tying the above together

# Markup Convention

Content values are serialized as follows:

  - a mapping value becomes a child element named after its key
  - a sequence value becomes one child element per item
  - a scalar value becomes an attribute
  - the key "_content" sets the element text

For example:

	markup.Pairs{
	    markup.KV("types", "message"),
	    markup.KV("query", markup.Pairs{markup.KV("_content", "in:inbox")}),
	}

becomes <SearchRequest types="message"><query>in:inbox</query></SearchRequest>.

# Quick Start

Building a batch document:

	doc := request.New()
	doc.SetAuthToken(token)
	doc.BeginBatch(request.NsZimbra, request.OnErrorContinue)
	id, _ := doc.AddRequest("GetInfoRequest", map[string]any{"sections": "mbox"}, "")
	fmt.Println(doc.GetRequest())

Sending it:

	client, _ := zimbra.NewClient(&zimbra.ClientConfig{
	    URL: "https://mail.example.com/service/soap",
	})
	client.Authenticate(ctx, zimbra.Credentials{Account: "user@example.com", PreAuthKey: key})
	resp, err := client.Send(ctx, doc)
	info, ok := resp.Get(*id)

# References

  - Zimbra SOAP API: https://files.zimbra.com/docs/soap_api/
  - SOAP 1.2: https://www.w3.org/TR/soap12-part1/

# License

BSD-2-Clause License
*/
package gozimbra
