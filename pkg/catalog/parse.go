package catalog

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/arthur-debert/prismatic/pkg/errors"
	"github.com/arthur-debert/prismatic/pkg/logging"
	"github.com/arthur-debert/prismatic/pkg/types"
)

// Parse validates a catalog document against the catalog schema and decodes
// it, dropping every "meta" entry
func Parse(data []byte) (*Catalog, error) {
	logger := logging.GetLogger("catalog")
	done := logging.LogOperationStart(logger, "parse catalog")
	defer done()

	result, err := ValidateDocument(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		messages := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			messages = append(messages, issue.String())
		}
		return nil, errors.Newf(errors.ErrCatalogInvalid, "catalog document is invalid (%d issues)", len(result.Issues)).
			WithDetail("issues", messages)
	}

	cat, err := decode(data)
	if err != nil {
		return nil, err
	}

	for _, category := range types.AllCategories() {
		logger.Debug().
			Str("category", category.String()).
			Int("definitions", cat.Count(category)).
			Msg("Catalog category loaded")
	}
	return cat, nil
}

// decode walks the document token by token so each category keeps the
// order its handles were written in
func decode(data []byte) (*Catalog, error) {
	cat := New()
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}

		category, err := types.ParseCategory(key)
		if key == types.MetaKey || err != nil {
			// Schema validation already rejected unknown sections
			if err := skipValue(dec); err != nil {
				return nil, err
			}
			continue
		}

		if err := decodeCategory(dec, cat, category); err != nil {
			return nil, err
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return cat, nil
}

func decodeCategory(dec *json.Decoder, cat *Catalog, category types.Category) error {
	if err := expectDelim(dec, '{'); err != nil {
		return errors.Wrapf(err, errors.ErrCatalogParse, "section %s must be an object", category)
	}

	for dec.More() {
		handle, err := readKey(dec)
		if err != nil {
			return err
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return errors.Wrapf(err, errors.ErrCatalogParse, "invalid entry %s/%s", category, handle)
		}
		if handle == types.MetaKey {
			continue
		}

		def, err := types.DecodeDefinition(category, handle, raw)
		if err != nil {
			return err
		}
		if err := cat.Add(def); err != nil {
			return errors.Wrapf(err, errors.ErrCatalogParse, "cannot add %s/%s", category, handle)
		}
	}

	return expectDelim(dec, '}')
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCatalogParse, "malformed catalog document")
	}
	key, ok := tok.(string)
	if !ok {
		return "", errors.Newf(errors.ErrCatalogParse, "expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return errors.Newf(errors.ErrCatalogParse, "unexpected end of catalog document, expected %q", want)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCatalogParse, "malformed catalog document")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return errors.Newf(errors.ErrCatalogParse, "expected %q, got %v", want, tok)
	}
	return nil
}

func skipValue(dec *json.Decoder) error {
	var discard json.RawMessage
	if err := dec.Decode(&discard); err != nil {
		return errors.Wrap(err, errors.ErrCatalogParse, "malformed catalog document")
	}
	return nil
}
