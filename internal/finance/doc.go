// Package finance computes advisory maturity previews for deposits and PPF.
//
// Every function is pure. A nil *Projection means "no preview": it is
// returned whenever a required input is zero, negative or unparsable, so a
// caller never shows a misleading zero. The backend remains authoritative;
// these figures are estimates shown before submission.
package finance
