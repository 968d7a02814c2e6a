// Package catalog loads entity definitions from catalog descriptor files.
//
// # Descriptor Format
//
// Descriptors can be written as multi-document YAML or as JSON (a single
// object or an array of objects):
//
//	apiVersion: backstage.io/v1alpha1
//	kind: Component
//	metadata:
//	  name: payments
//	  annotations:
//	    backstage.io/techdocs-ref: dir:.
//	---
//	apiVersion: backstage.io/v1alpha1
//	kind: API
//	metadata:
//	  name: payments-api
//
// # Usage
//
//	loader := catalog.NewLoader(catalog.Options{StampLocation: true})
//	entities, err := loader.Load("catalog-info.yaml")
//
// With StampLocation set, entities without a managed-by annotation receive
// "file:<absolute descriptor path>", which is what the catalog records when
// it ingests a local file.
//
// # Error Handling
//
//   - ErrFileNotFound: descriptor file does not exist
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrUnsupportedExt: unsupported file extension
//   - ErrNoEntities: descriptor holds no entity
//   - ErrMissingName / ErrMissingKind: entity fails validation
package catalog
