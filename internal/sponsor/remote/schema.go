package remote

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// listSchema describes what the script returns for GET: an array of sheet
// rows. Extra columns are tolerated and relayed; the two sponsor columns must
// be strings when present.
const listSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "MalePrincipalSponsor":   {"type": ["string", "null"]},
      "FemalePrincipalSponsor": {"type": ["string", "null"]}
    }
  }
}`

var listSchemaLoader = gojsonschema.NewStringLoader(listSchema)

func validateListBody(body []byte) error {
	result, err := gojsonschema.Validate(listSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("parse list body: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("list body does not match schema: %s", strings.Join(msgs, "; "))
}
