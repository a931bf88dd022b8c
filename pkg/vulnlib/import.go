package vulnlib

import (
	"context"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Import loads a JSON document of the form {"<gav>": ["CVE-...", ...]}
// into the mirror and returns the number of GAVs read. The document is
// applied in one transaction: a bad entry leaves the mirror unchanged.
func (cli *DB) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return 0, fmt.Errorf("%w: expected an object of GAV to CVE lists", ErrMalformedResponse)
	}

	tx, err := cli.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	count := 0
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		// Entries are CVE lists, the same shape the remote service returns
		cves, perr := parseCVEList([]byte(fmt.Sprintf(`{%q:%s}`, cveIDsKey, value.Raw)))
		if perr != nil {
			err = fmt.Errorf("%s: %w", key.String(), perr)
			return false
		}

		if err = insert(ctx, tx, key.String(), cves); err != nil {
			return false
		}

		count++
		return true
	})

	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}
