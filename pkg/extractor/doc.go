// Package extractor turns rendered user-list rows into UserRecords.
//
// A row ("cell") is any element carrying the list's row marker, by default
// data-testid="UserCell". Inside a cell the first anchor whose href is a bare
// profile path ("/handle") identifies the user:
//
//	<div data-testid="UserCell">
//	    <a href="/jack"><span>Jack</span></a>
//	    <svg aria-label="Verified account"></svg>
//	</div>
//
// Extraction never fails loudly. A cell that cannot be parsed yields nil and
// is skipped by the caller.
package extractor
