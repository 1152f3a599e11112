// Package itemdraft models the nested item configuration sub-flow of the
// order wizard: a strictly ordered chain of substeps that collects the
// catalog item, its characteristics, defects and risks, a price preview,
// and photos, before the draft is committed to the order as a whole.
//
// A Draft lives inside the wizard session aggregate and never persists on
// its own. Its local id stays stable across edits of the same item, which
// is what makes duplicate saves detectable and edits replace rather than
// duplicate.
package itemdraft
