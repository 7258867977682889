package prose

import "strings"

const (
	NounChunk = "NP"
	VerbChunk = "VP"
	PrepChunk = "PP"
)

// Chunks returns the chunk type of each tag of a tagged sentence, an empty
// string for words outside any chunk.
//
//	NP: (DT|PDT|PRP$|CD|JJ*|NN*|POS|PRP)+ containing a noun, pronoun or number
//	VP: (MD|VB*|RP|RB*)+ containing a verb, adverbs only between verbs
//	PP: IN, or TO not followed by a verb
func Chunks(tags []string) []string {
	res := make([]string, len(tags))

	for i := 0; i < len(tags); {
		switch {
		case inNoun(tags[i]):
			j := i
			head := false
			for j < len(tags) && inNoun(tags[j]) {
				head = head || isNounHead(tags[j])
				j++
			}
			if head {
				fill(res, i, j, NounChunk)
			}
			i = j

		case isVerb(tags[i]) || tags[i] == "MD":
			j := i + 1
			last := i
			for j < len(tags) && inVerb(tags[j]) {
				if !isAdverb(tags[j]) {
					last = j
				}
				j++
			}
			fill(res, i, last+1, VerbChunk)
			i = last + 1

		case tags[i] == "IN":
			res[i] = PrepChunk
			i++

		case tags[i] == "TO":
			if i+1 >= len(tags) || !isVerb(tags[i+1]) {
				res[i] = PrepChunk
			} else {
				res[i] = VerbChunk
			}
			i++

		default:
			i++
		}
	}

	return res
}

func fill(res []string, from, to int, chunk string) {
	for k := from; k < to; k++ {
		res[k] = chunk
	}
}

func inNoun(tag string) bool {
	switch tag {
	case "DT", "PDT", "PRP$", "CD", "POS", "PRP":
		return true
	}
	return strings.HasPrefix(tag, "JJ") || strings.HasPrefix(tag, "NN")
}

func isNounHead(tag string) bool {
	return tag == "PRP" || tag == "CD" || strings.HasPrefix(tag, "NN")
}

func isVerb(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

func isAdverb(tag string) bool {
	return strings.HasPrefix(tag, "RB")
}

func inVerb(tag string) bool {
	return isVerb(tag) || isAdverb(tag) || tag == "MD" || tag == "RP"
}
