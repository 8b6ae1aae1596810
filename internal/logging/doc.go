// Package logging provides the bookxmp.Logger implementations:
//   - ConsoleLogger: writes lines to stderr (or any writer), with an optional
//     decorator for the level prefix
//   - NullLogger: discards all messages
package logging
