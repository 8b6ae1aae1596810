// Package document wraps a host document (bookxmp.HostDocument) and owns the
// metadata tree parsed from it.
//
// Typical use:
//
//	doc, err := document.Open(host.NewSidecarLoader(fsys), "paris.yaml", logger)
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	book, err := doc.Book()
//	...
//	err = doc.SaveAs("paris.yaml")
//
// Metadata access fails with bookxmp.ErrEncryptedMetadata when the host
// encrypts its metadata stream and with bookxmp.ErrDocumentClosed after
// Close. Document information stays readable while metadata are encrypted.
package document
