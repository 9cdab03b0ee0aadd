package imaging

import(
	"errors"

	"github.com/abworrall/galaxy-imager/pkg/morph"
)

// The three failure kinds the pipeline can hit. They're all
// deterministic configuration/geometry errors - nothing here is
// transient, so nothing retries. Compare with errors.Is.
var(
	ErrInvalidParameter = morph.ErrInvalidParameter
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrMissingBand      = errors.New("missing band")
)
