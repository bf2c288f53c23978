/*
Package markov provides a fixed-order, character-level Markov text generator.

A Model learns, from a training corpus, how often each character follows
every window of W preceding characters. Training turns those counts into
probabilities and cumulative probabilities, and generation extends a seed
text one character at a time by inverse-CDF sampling from the table of the
current trailing window.

	m, err := markov.New(3, markov.WithSeed(42))
	if err != nil {
		return err
	}
	if err := m.TrainString(corpus); err != nil {
		return err
	}
	text, err := m.Generate("The", 200)

Characters are Unicode scalar values. A Model is not safe for concurrent
training; once trained it is only read, but generation advances the model's
random source, so concurrent Generate calls must be synchronized by the
caller.
*/
package markov
