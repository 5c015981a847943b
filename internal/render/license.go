package render

import (
	"fmt"
	"os"
	"sync"

	officelicense "github.com/unidoc/unioffice/common/license"
	pdflicense "github.com/unidoc/unipdf/v3/common/license"
)

var licenseOnce sync.Once

// initLicense registers the UniDoc license key from the environment.
// Without a key the libraries run in unlicensed mode, which is enough
// for development but watermarks output.
func initLicense() {
	licenseOnce.Do(func() {
		key := os.Getenv("UNIDOC_LICENSE_API_KEY")
		if key == "" {
			return
		}
		if err := pdflicense.SetMeteredKey(key); err != nil {
			fmt.Printf("Warning: unipdf license: %v\n", err)
		}
		if err := officelicense.SetMeteredKey(key); err != nil {
			fmt.Printf("Warning: unioffice license: %v\n", err)
		}
	})
}
