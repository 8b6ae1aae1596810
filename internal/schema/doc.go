// Package schema maps the book metadata schema onto an xmp property tree.
//
// Entities (Book, Work, Author, MusicAttributes, LocalizedText) are thin
// views: each is a binding of a Tree, the entity's own namespace and, for
// nested entities, a Location. They keep no state of their own.
//
// Layout in the tree, all under the book schema namespace:
//
//	book:Title        struct  text:lang, text:content
//	book:GUID         simple
//	book:DateCreated  simple  YYYY-MM-DD
//	book:Genres       seq     of simple
//	book:Authors      seq     of struct  author:Name, author:lang, author:GUID
//	book:MusicSheets  struct  sheets:Key, sheets:Instruments, sheets:CatalogNumber, sheets:Transcription
//	book:Works        seq     of struct  work:Title, work:GUID, ... (same as book, without works)
//
// Every engine failure is returned as *bookxmp.AccessError; stored values
// that do not decode are returned as *bookxmp.ValueError.
package schema
