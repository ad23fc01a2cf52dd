// Package ingest turns raw input text into engine operations. It owns the
// reserved structural tokens and the line-splitting rules at the system
// boundary:
//
//   - each line is one command
//   - empty lines are discarded before reaching the engine
//   - the reserved tokens "{" and "}" open and close an explicit block;
//     every other line is ordinary command text, stamped with the arrival
//     time
//
// Two drivers are provided. Session is a connection-style handle that owns an
// engine and its consumers and accepts raw chunks of text; Scanner feeds an
// existing engine from an io.Reader line by line.
package ingest
