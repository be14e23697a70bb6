// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package response parses Zimbra SOAP responses.

Parse accepts SOAP 1.2 and SOAP 1.1 envelopes and locates the header context
and the body by local name, so any namespace prefix works.

	resp, err := response.Parse(data)
	if err != nil {
	    return err
	}
	if fault := resp.Fault(); fault != nil {
	    return fault // *response.FaultError
	}
	info := resp.First() // e.g. <GetInfoResponse>

Batch responses are looked up by the requestId assigned when the request
was built:

	info, ok := resp.Get(0)
	if fault := resp.FaultFor(1); fault != nil {
	    ...
	}
*/
package response
