// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides GZIP compression for SOAP request bodies.

Large batch documents compress well. The transport compresses request
bodies at or above a size threshold and sends them with
"Content-Encoding: gzip"; gzip encoded responses are decoded the same way.

# Compression

	gz, err := compression.NewGzip(gzip.BestSpeed, 16*1024)
	if gz.ShouldCompress(len(body)) {
	    body, err = gz.Compress(body)
	}

# Decompression

	plain, err := compression.Decompress(resp.Body)

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
  - HTTP Content-Encoding: https://datatracker.ietf.org/doc/html/rfc9110#section-8.4
*/
package compression
