package extractor

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// NavigatedFields points into the parsed payload at the sub-trees the
// assembler reads from.
type NavigatedFields struct {
	Meta       gjson.Result
	Ratings    gjson.Result
	Variant    gjson.Result
	Prices     gjson.Result
	Promotions gjson.Result
}

// Navigate walks query.data.mainContent.records[0].allMeta and the first
// variant below it. Each step fails on its own so the error names the
// segment that was missing.
func Navigate(root gjson.Result) (NavigatedFields, error) {
	var f NavigatedFields

	query, err := object(root, "query", "")
	if err != nil {
		return f, err
	}
	data, err := object(query, "data", "query")
	if err != nil {
		return f, err
	}
	mainContent, err := object(data, "mainContent", "query.data")
	if err != nil {
		return f, err
	}
	records, err := array(mainContent, "records", "query.data.mainContent")
	if err != nil {
		return f, err
	}
	record, err := firstObject(records, "records", "query.data.mainContent")
	if err != nil {
		return f, err
	}

	const recordPath = "query.data.mainContent.records[0]"
	f.Meta, err = object(record, "allMeta", recordPath)
	if err != nil {
		return f, err
	}

	const metaPath = recordPath + ".allMeta"
	f.Ratings, err = object(f.Meta, "ratingInfo", metaPath)
	if err != nil {
		return f, err
	}
	variants, err := array(f.Meta, "variants", metaPath)
	if err != nil {
		return f, err
	}
	f.Variant, err = firstObject(variants, "variants", metaPath)
	if err != nil {
		return f, err
	}

	const variantPath = metaPath + ".variants[0]"
	f.Prices, err = object(f.Variant, "prices", variantPath)
	if err != nil {
		return f, err
	}
	f.Promotions, err = array(f.Variant, "liverpoolPromotionsEMI", variantPath)
	if err != nil {
		return f, err
	}
	return f, nil
}

// lookup finds key among the direct members of obj. Keys are compared
// verbatim, so path syntax characters in a key have no special meaning.
func lookup(obj gjson.Result, key string) (gjson.Result, bool) {
	var (
		found gjson.Result
		ok    bool
	)
	if !obj.IsObject() {
		return found, false
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

func object(parent gjson.Result, key, path string) (gjson.Result, error) {
	v, ok := lookup(parent, key)
	if !ok || !v.IsObject() {
		return gjson.Result{}, &MissingFieldError{Field: key, Path: join(path, key)}
	}
	return v, nil
}

func array(parent gjson.Result, key, path string) (gjson.Result, error) {
	v, ok := lookup(parent, key)
	if !ok || !v.IsArray() {
		return gjson.Result{}, &MissingFieldError{Field: key, Path: join(path, key)}
	}
	return v, nil
}

func firstObject(arr gjson.Result, key, path string) (gjson.Result, error) {
	items := arr.Array()
	if len(items) == 0 || !items[0].IsObject() {
		seg := fmt.Sprintf("%s[0]", key)
		return gjson.Result{}, &MissingFieldError{Field: seg, Path: join(path, seg)}
	}
	return items[0], nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
