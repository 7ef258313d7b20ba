// Package assistant routes free-text questions to an answer strategy.
//
// A question is first classified as team, meeting or general. Team and
// meeting questions pull top-k passages from the matching corpus and
// answer with that context; general questions answer directly. Every
// response carries a source label naming the strategy that produced it.
// Classification never streams and never fails a request: unrecognized
// or failed classifications fall back to general.
package assistant
