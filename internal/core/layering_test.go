package core

import (
	"testing"

	"fibernet/testutil"
)

func TestCoreDoesNotDependOnTransport(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.Any(testutil.Under("internal/api", "internal/export"), testutil.HTTPFrameworkImport),
		"the service is called by the HTTP layer and the exporter, never the reverse")
}
