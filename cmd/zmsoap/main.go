// Command zmsoap builds and sends Zimbra SOAP requests described in YAML
// request files.
//
//	zmsoap build -f getinfo.yaml
//	zmsoap --config zmsoap.yaml send -f getinfo.yaml
//	zmsoap preauth --account user@example.com --key $KEY
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
