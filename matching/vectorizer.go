package matching

import (
	"math"
	"strings"
	"unicode"
)

// tokenize lower-cases text and returns runs of two or more word characters,
// minus stop-words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// terms expands tokens into unigrams followed by bigrams.
func terms(text string) []string {
	tokens := tokenize(text)
	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// vectorizer is a smoothed tf-idf model fitted on candidate texts.
type vectorizer struct {
	idf map[string]float64
}

func fitVectorizer(docs []string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, t := range terms(doc) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for t, count := range df {
		idf[t] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return &vectorizer{idf: idf}
}

// transform projects text into the fitted space as an L2-normalised sparse
// vector. Terms outside the vocabulary are ignored.
func (v *vectorizer) transform(text string) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range terms(text) {
		if _, ok := v.idf[t]; ok {
			vec[t]++
		}
	}
	var norm float64
	for t, tf := range vec {
		w := tf * v.idf[t]
		vec[t] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for t := range vec {
		vec[t] /= norm
	}
	return vec
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for t, w := range a {
		sum += w * b[t]
	}
	return sum
}

func candidateText(c CandidateRecord) string {
	return strings.Join([]string{
		c.Destination, c.Nationality, c.AccommodationType, c.TransportationType, c.TravelStyle,
	}, " ")
}

func seekerText(s SeekerProfile) string {
	return strings.Join([]string{s.Destination, s.TravelStyle, s.Hobbies}, " ")
}

// Score returns the cosine similarity in [0,1] between the seeker and every
// candidate. The vocabulary is fitted on the candidates only; an empty
// vocabulary yields zero for everyone.
func Score(seeker SeekerProfile, candidates []CandidateRecord) []float64 {
	scores := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return scores
	}

	docs := make([]string, len(candidates))
	for i, c := range candidates {
		docs[i] = candidateText(c)
	}
	v := fitVectorizer(docs)
	if len(v.idf) == 0 {
		return scores
	}

	query := v.transform(seekerText(seeker))
	if query == nil {
		return scores
	}
	for i, doc := range docs {
		s := dot(query, v.transform(doc))
		scores[i] = math.Max(0, math.Min(1, s))
	}
	return scores
}
