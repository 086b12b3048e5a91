// Package app wires config, the relay client, and the picker UI into the
// one-shot operations the CLI exposes.
//
// Run performs a full save: submit the source URL, interpret the response
// variant, download the media it points at, and write files into the output
// directory. Info fetches instance metadata. Both resolve configuration the
// same way: config file, then environment, then command-line overrides.
//
// The Saver type holds the variant-dispatch logic behind Run. It depends on
// relay.Processor rather than *relay.Client so tests can substitute a fake
// without a network.
package app
