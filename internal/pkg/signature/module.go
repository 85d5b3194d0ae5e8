package signature

import "go.uber.org/fx"

// Module provides the default signature verifier.
var Module = fx.Provide(func() Verifier { return NewHMACVerifier() })
