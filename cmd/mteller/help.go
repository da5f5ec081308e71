// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(featuresGuide)
	app.Add(modelsGuide)
}

var featuresGuide = &command.Command{
	Usage: "features",
	Short: "about the feature table",
	Long: `
Mteller describes an alignment with a set of features that are used by a
classifier to rank the substitution models. The features are calculated from
the alignment, from the alignment reduced to the ingroup, and from a tree
estimated with PhyML under the GTR+I+G model.

The feature table is a tab-delimited file with the following fields:

	- index    an identifier of the alignment
	- model    the substitution model of the row
	- <key>    one column for each feature

The table has one row for each of the 24 substitution models. Most features
are shared by all the rows, the exceptions are the model columns:

	- model_I       1 if the model has a proportion of invariant sites
	- model_G       1 if the model has gamma rate categories
	- model_F       1 if the model uses empirical base frequencies
	- model_matrix  the substitution class: 0 for a single rate, 1 for
	                transitions and transversions, 2 for six rates

The last column, base_freqs_entropy, is the entropy (in bits) of the base
frequencies of the alignment.

Features of the reduced alignment are prefixed with "rmsa_", and features of
the tree are prefixed with "GTR+I+G_". Features that cannot be calculated are
written as empty cells.

Here is a fragment of a feature table:

	# mteller features
	index	model	ntaxa	nchars	...
	0	JC	12	1024	...
	0	JC+I	12	1024	...

The tree used to calculate the features is estimated by default with PhyML
optimizing the model parameters over a distance tree. The flag --gtrig of the
command 'mteller features' uses the maximum likelihood tree, and the flag
--tree uses a tree provided by the user.

The scores produced by the classifier are read by the command 'mteller rank'
as a tab-delimited file with the fields "index", "model", and "score".
	`,
}

var modelsGuide = &command.Command{
	Usage: "models",
	Short: "about substitution models",
	Long: `
Mteller ranks 24 nucleotide substitution models. Each model is defined by a
base model and a rate heterogeneity tag.

The base models are:

	- JC   equal rates, equal frequencies
	- F81  equal rates, empirical frequencies
	- K80  transitions and transversions, equal frequencies
	- HKY  transitions and transversions, empirical frequencies
	- SYM  six rates, equal frequencies
	- GTR  six rates, empirical frequencies

The tags are:

	- (none)  no rate heterogeneity
	- +I      a proportion of invariant sites
	- +G      discrete gamma rate categories
	- +I+G    both invariant sites and gamma categories

Model names are case insensitive, so "gtr+i+g" is the same model as
"GTR+I+G".

When PhyML is run for a model with gamma categories, the number of
categories, and whether the median of each category is used, are taken from
the parameter file. See 'mteller help param' to learn how to set these
values.
	`,
}
