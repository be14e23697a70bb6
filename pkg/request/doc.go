// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package request builds Zimbra SOAP request documents.

A Document owns a SOAP 1.2 envelope with a header context block and a body:

	<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
	  <soap:Header>
	    <context xmlns="urn:zimbra"><format type="xml"/></context>
	  </soap:Header>
	  <soap:Body/>
	</soap:Envelope>

# Single Requests

Outside batch mode every request names its own namespace:

	doc := request.New()
	doc.SetAuthToken(token)
	_, err := doc.AddRequest("GetInfoRequest", markup.Pairs{markup.KV("sections", "mbox")}, request.NsZimbraAccount)

# Batch Requests

BeginBatch wraps all following requests in a BatchRequest element. Each
request gets a requestId attribute, assigned sequentially from the first id
(0 unless WithFirstRequestID is given):

	doc := request.New()
	doc.BeginBatch(request.NsZimbra, request.OnErrorContinue)
	id, _ := doc.AddRequest("GetInfoRequest", nil, "") // *id == 0
	id, _ = doc.AddRequest("NoOpRequest", nil, "")     // *id == 1

Batch mode cannot be left and BeginBatch can only be called once.

# Output

GetRequest returns the serialized document. It does not change the
document and may be called any number of times.

A Document is not safe for concurrent use.
*/
package request
