// Package consensus implements the rule-based moderator that combines two
// independent review perspectives into a single verdict.
//
// The consensus score is the integer average of the two perspective scores,
// and the interpretation band is derived from their absolute difference
// (within 10 points = Strong Agreement, within 20 = Moderate Agreement,
// beyond that = Significant Disagreements). The recommendation follows the
// consensus score unless a flagged issue carries a stop-ship priority, in
// which case it overrides the numbers.
//
// Agreement and disagreement evidence is extracted with a keyword heuristic
// over each side's response text. This is deliberately not NLP: a sentence
// containing "disagree" or "concern" is treated as disagreement evidence, a
// sentence containing "agree" or "excellent" as agreement evidence. The whole
// analysis is local, deterministic, and fast.
package consensus
