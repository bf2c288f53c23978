/*
Package corpus provides a SQLite-backed library of named training corpora
and an audit log of generation runs.

Trained models are never stored; a model is rebuilt from its corpus each
time it is needed. A recorded Run keeps every parameter that determines
the generated text (corpus, window length, seed, seed text and target
length), so a run can be replayed and checked for bit-identical output.

The package works with any database/sql SQLite driver. SetupSchema must be
called once on a new database before NewStore.
*/
package corpus
