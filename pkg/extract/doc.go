// Package extract obtains the core metadata of a Python source project
// without building it.
//
// # Pipeline
//
// [Extractor.Extract] runs three steps:
//
//  1. Resolve the build backend with [buildsys.Resolve].
//  2. Create a private scratch directory and ask the backend, through a
//     [hooks.Caller], to prepare its metadata there.
//  3. Parse <scratch>/<name>/METADATA, where name is the directory the
//     backend reported, into a [metadata.Metadata].
//
// Once created, the scratch directory is removed on every exit path,
// including hook failure, parse failure and context cancellation. The returned
// document holds copies of the parsed values and outlives it.
//
// # Errors
//
// Errors from the resolver and the hook caller are returned unmodified.
// A backend that reports success but leaves no METADATA file behind is a
// contract violation, reported with code METADATA_CONTRACT so it can be told
// apart from hook failures.
//
// Nothing is cached and nothing is retried: every call runs the backend
// again, and because backends may have side effects, retry policy is left
// to the caller.
//
// # Concurrency
//
// An Extractor has no mutable state. Concurrent calls each get their own
// scratch directory. [Inspect] runs extraction and requirements scanning
// for one project concurrently.
package extract
