// Package jsonframe infers typed, column-oriented frames from JSON.
//
// It provides:
//
//   - Schema inference over heterogeneous JSON records (Infer, InferDocument)
//     with two tactics for mixed kinds: Structured and Dynamic
//   - Readers over token drivers with duplicate-key/depth/size enforcement
//     (ReadJSON, ReadJSONLines) and over YAML documents (ReadYAML)
//   - An encoder that turns a frame back into the JSON it was inferred from
//     (Encode, EncodeJSON)
//   - A stable error model via Issues (JSONPath, code, message)
//
// The column model lives in package frame, element types and their
// promotion rules in package dtype, and path patterns in package jsonpath.
//
// Design policy:
//   - Keep only public APIs in the root package; put the inference engine and
//     token plumbing under internal/.
//   - Place token drivers under source/, schema projections under jsonschema/
//     and arrowschema/, and the CLI under cmd/jsonframe.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	df, err := jsonframe.ReadJSONBytes(ctx, data, jsonframe.Options{
//		KeyValuePaths: []jsonpath.Path{jsonpath.MustParse(`$["labels"]`)},
//	})
//	fmt.Println(df.Schema())
//	out, err := jsonframe.EncodeJSON(df)
package jsonframe
