// Package collector holds the in-memory collection state and the two
// operations that mutate it: scanning the current page into the scan buffer,
// and merging the buffer into one of the persistent relationship sets.
//
// A State is the process-scoped context object. It is obtained through a
// Registry so that starting collection again on another page resumes the
// data already gathered instead of discarding it:
//
//	reg := collector.NewRegistry()
//	state, resumed := reg.Acquire("xfollowData")
//	scanner := collector.NewScanner(state, source, "UserCell", log)
//	scanner.Scan(ctx)
//	state.SaveFollowing()
//
// Every tick and every operator call runs under the State's lock, so they
// never interleave.
package collector
