package usecases

import (
	"iter"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// PlanGenerator is stage 6 of the pipeline (spec §4.6): it enumerates a
// ResolvedConfig against a ResolvedContext into a finite sequence of
// RenderedItem values.
type PlanGenerator struct {
	rng RandomSource
}

// NewPlanGenerator creates a PlanGenerator drawing randomness from rng.
func NewPlanGenerator(rng RandomSource) *PlanGenerator {
	return &PlanGenerator{rng: rng}
}

// axis is one placeholder's precomputed, ordered candidate list for
// cross-product enumeration.
type axis struct {
	name       string
	weight     int
	zeroWeight bool
	keys       []string
}

// Enumerate builds the full set of RenderedItem values for rc/ctx/opts and
// returns them as a lazy iter.Seq, so a consumer may stop pulling at any
// item boundary (spec §5) without the generator having done more work than
// necessary up to that point.
func (g *PlanGenerator) Enumerate(rc *entities.ResolvedConfig, ctx *entities.ResolvedContext, opts *entities.PlanOptions) (iter.Seq[entities.RenderedItem], error) {
	axes, err := g.buildAxes(rc, ctx, opts)
	if err != nil {
		return nil, err
	}

	crossAxes, zeroAxes := partitionAxes(axes)
	tuples := cartesianProduct(crossAxes)

	if rc.Generation.Mode == entities.GenerationModeRandom {
		max := effectiveMax(opts, rc.Generation)
		tuples = g.sampleWithoutReplacement(tuples, max)
	}

	maxImages := effectiveMax(opts, rc.Generation)

	seq := func(yield func(entities.RenderedItem) bool) {
		emitted := 0

		emit := func(tuple map[string]string, seed int64) bool {
			if maxImages > 0 && emitted >= maxImages {
				return false
			}
			applied := g.applyZeroWeight(tuple, zeroAxes)
			item, err := g.render(rc, ctx, applied, seed)
			if err != nil {
				return false
			}
			emitted++
			return yield(item)
		}

		if opts.HasSeedOverride() {
			for _, seed := range opts.Seeds {
				for _, tuple := range tuples {
					if !emit(tuple, seed) {
						return
					}
				}
			}
			return
		}

		for i, tuple := range tuples {
			seed := g.seedFor(rc.Generation, i)
			if !emit(tuple, seed) {
				return
			}
		}
	}

	return seq, nil
}

// buildAxes computes, for every placeholder referenced in rc.References, its
// ordered candidate key list and weight, honoring fixed-value overrides and
// the union-of-selectors / last-occurrence-weight rules of spec §4.5.4.
func (g *PlanGenerator) buildAxes(rc *entities.ResolvedConfig, ctx *entities.ResolvedContext, opts *entities.PlanOptions) ([]axis, error) {
	order := uniqueNames(rc.References)
	refsByName := make(map[string][]entities.PlaceholderRef, len(order))
	for _, r := range rc.References {
		refsByName[r.Name] = append(refsByName[r.Name], r)
	}

	var axes []axis
	for _, name := range order {
		if ctx.Removed[name] {
			continue
		}

		if fixed, ok := opts.FixedValues[name]; ok {
			vs, ok := ctx.Imports[name]
			if !ok {
				return nil, &entities.UnknownPlaceholderError{Name: name}
			}
			if _, ok := vs.Get(fixed); !ok {
				return nil, &entities.UnknownVariationKeyError{Name: name, Requested: fixed, Available: vs.Keys}
			}
			axes = append(axes, axis{name: name, weight: weightFor(refsByName[name]), keys: []string{fixed}})
			continue
		}

		vs, ok := ctx.Imports[name]
		if !ok {
			return nil, &entities.UnknownPlaceholderError{Name: name}
		}

		keys, err := g.unionSelection(vs, refsByName[name])
		if err != nil {
			return nil, err
		}

		w := weightFor(refsByName[name])
		axes = append(axes, axis{name: name, weight: w, zeroWeight: w == 0, keys: keys})
	}

	return axes, nil
}

// implicitWeight is the shared weight assigned to a placeholder whose
// references carry no explicit $W fragment (spec §4.5.4: "all placeholders
// share an implicit weight"); ties among them are broken by first occurrence
// because the axis slice is built in that order and the stable insertion
// sort in stableSortByWeight preserves it.
const implicitWeight = 1

func weightFor(refs []entities.PlaceholderRef) int {
	for _, r := range refs {
		if w, ok := r.Selector.HasExplicitWeight(); ok {
			return w
		}
	}
	return implicitWeight
}

// unionSelection computes the union, in first-appearance order, of the
// selection every reference of one placeholder name requests (spec §4.5.4).
// A reference with no selector (or a weight-only selector) carries no
// selection of its own and is non-constraining: it contributes nothing to
// the union and is ignored as long as some other reference of the same
// name carries an actual Random/Indices/Keys selector. Only when none of
// the references carry one does the placeholder fall back to "all
// variations, in authored order".
func (g *PlanGenerator) unionSelection(vs *entities.VariationSet, refs []entities.PlaceholderRef) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	hasSelection := false

	for _, r := range refs {
		part := r.Selector.SelectionPart()
		if part == nil {
			continue
		}
		hasSelection = true
		keys, err := g.resolveSelectionPart(vs, part)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}

	if !hasSelection {
		return append([]string{}, vs.Keys...), nil
	}
	return out, nil
}

// resolveSelectionPart resolves one non-weight selector fragment into the
// concrete list of keys it selects.
func (g *PlanGenerator) resolveSelectionPart(vs *entities.VariationSet, sel *entities.Selector) ([]string, error) {
	switch sel.Kind {
	case entities.SelectorKindRandom:
		pool := append([]string{}, vs.Keys...)
		g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		n := sel.N
		if n > len(pool) {
			// random:N exceeding cardinality: take all available (spec §9
			// open question, documented stable policy).
			n = len(pool)
		}
		return pool[:n], nil

	case entities.SelectorKindIndices:
		out := make([]string, 0, len(sel.Indices))
		for _, idx := range sel.Indices {
			if idx < 0 || idx >= len(vs.Keys) {
				return nil, &entities.UnknownVariationKeyError{Name: vs.Name, Requested: indexToken(idx), Available: vs.Keys}
			}
			out = append(out, vs.Keys[idx])
		}
		return out, nil

	case entities.SelectorKindKeys:
		out := make([]string, 0, len(sel.Keys))
		for _, k := range sel.Keys {
			if _, ok := vs.Get(k); !ok {
				return nil, &entities.UnknownVariationKeyError{Name: vs.Name, Requested: k, Available: vs.Keys}
			}
			out = append(out, k)
		}
		return out, nil

	default:
		return append([]string{}, vs.Keys...), nil
	}
}

func indexToken(idx int) string {
	const digits = "0123456789"
	if idx == 0 {
		return "0"
	}
	neg := idx < 0
	if neg {
		idx = -idx
	}
	var b []byte
	for idx > 0 {
		b = append([]byte{digits[idx%10]}, b...)
		idx /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// partitionAxes splits axes into the positive-weight set that participates
// in the cross-product, sorted ascending by weight (stable, so ties keep
// first-occurrence order), and the zero-weight set sampled once per item.
func partitionAxes(axes []axis) (cross []axis, zero []axis) {
	for _, a := range axes {
		if a.zeroWeight {
			zero = append(zero, a)
		} else {
			cross = append(cross, a)
		}
	}
	stableSortByWeight(cross)
	return cross, zero
}

func stableSortByWeight(axes []axis) {
	for i := 1; i < len(axes); i++ {
		for j := i; j > 0 && axes[j].weight < axes[j-1].weight; j-- {
			axes[j], axes[j-1] = axes[j-1], axes[j]
		}
	}
}

// cartesianProduct builds the full cross product of axes, outermost axis
// (axes[0]) changing slowest, matching nested-loop iteration order.
func cartesianProduct(axes []axis) []map[string]string {
	if len(axes) == 0 {
		return []map[string]string{{}}
	}
	rest := cartesianProduct(axes[1:])
	out := make([]map[string]string, 0, len(axes[0].keys)*len(rest))
	for _, k := range axes[0].keys {
		for _, r := range rest {
			combo := make(map[string]string, len(r)+1)
			combo[axes[0].name] = k
			for rk, rv := range r {
				combo[rk] = rv
			}
			out = append(out, combo)
		}
	}
	return out
}

// sampleWithoutReplacement shuffles tuples and truncates to max (spec
// §4.6.1 random mode); max <= 0 means unbounded, so the whole shuffled set
// is returned.
func (g *PlanGenerator) sampleWithoutReplacement(tuples []map[string]string, max int) []map[string]string {
	shuffled := append([]map[string]string{}, tuples...)
	g.rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if max > 0 && max < len(shuffled) {
		return shuffled[:max]
	}
	return shuffled
}

func effectiveMax(opts *entities.PlanOptions, gen entities.GenerationBlock) int {
	if opts != nil && opts.MaxImages > 0 {
		return opts.MaxImages
	}
	return gen.MaxImages
}

// applyZeroWeight draws one fresh random key per zero-weight axis for a
// single emitted item (spec §4.6.1/§8.2: chosen once per item, not per axis
// combination) and merges it into the cross-product tuple's choices.
func (g *PlanGenerator) applyZeroWeight(tuple map[string]string, zeroAxes []axis) map[string]string {
	if len(zeroAxes) == 0 {
		return tuple
	}
	out := make(map[string]string, len(tuple)+len(zeroAxes))
	for k, v := range tuple {
		out[k] = v
	}
	for _, a := range zeroAxes {
		out[a.name] = a.keys[g.rng.IntN(len(a.keys))]
	}
	return out
}

func (g *PlanGenerator) seedFor(gen entities.GenerationBlock, index int) int64 {
	switch gen.SeedMode {
	case entities.SeedModeProgressive:
		return gen.Seed + int64(index)
	case entities.SeedModeRandom:
		return g.rng.Int64()
	default:
		return gen.Seed
	}
}

// render substitutes the chosen key for each placeholder reference into
// rc.TemplateText and rc.Negative, producing one RenderedItem. Chunk
// directives have already been expanded by stage 5; only {Name}, {Name:part}
// and {Name[selector]} references remain, and selector brackets play no
// further role here now that their selection has already determined which
// key this item carries.
func (g *PlanGenerator) render(rc *entities.ResolvedConfig, ctx *entities.ResolvedContext, chosen map[string]string, seed int64) (entities.RenderedItem, error) {
	applied := make(map[string]entities.AppliedVariation, len(chosen))
	for name, key := range chosen {
		applied[name] = entities.AppliedVariation{Key: key}
	}
	for name := range ctx.Removed {
		applied[name] = entities.AppliedVariation{}
	}

	prompt, err := g.substitute(rc.TemplateText, applied, ctx)
	if err != nil {
		return entities.RenderedItem{}, err
	}
	negative, err := g.substitute(rc.Negative, applied, ctx)
	if err != nil {
		return entities.RenderedItem{}, err
	}

	return entities.RenderedItem{
		Prompt:     prompt,
		Negative:   negative,
		Parameters: rc.Parameters,
		Seed:       seed,
		Applied:    applied,
	}, nil
}

// substitute walks text's placeholder references, replacing each with the
// chosen variation's relevant part, or the empty string for a
// theme-removed placeholder (spec §4.5.2, §4.3 step 1).
func (g *PlanGenerator) substitute(text string, applied map[string]entities.AppliedVariation, ctx *entities.ResolvedContext) (string, error) {
	refs, err := entities.ScanPlaceholders(text)
	if err != nil {
		return "", err
	}

	var out []byte
	cursor := 0
	runes := []rune(text)

	for _, ref := range refs {
		start := ref.Start
		end := start + len([]rune(ref.Raw))
		out = append(out, string(runes[cursor:start])...)

		if ctx.Removed[ref.Name] {
			cursor = end
			continue
		}

		av, ok := applied[ref.Name]
		if !ok {
			return "", &entities.UnknownPlaceholderError{Name: ref.Name}
		}
		vs, ok := ctx.Imports[ref.Name]
		if !ok {
			return "", &entities.UnknownPlaceholderError{Name: ref.Name}
		}
		entry, ok := vs.Get(av.Key)
		if !ok {
			return "", &entities.UnknownVariationKeyError{Name: ref.Name, Requested: av.Key, Available: vs.Keys}
		}

		part := ref.Part
		if part == "" {
			part = entities.MainPart
		}
		value, ok := entry.Part(part)
		if !ok {
			return "", &entities.UnknownPartError{Name: ref.Name, VariationKey: av.Key, Part: part, AvailableParts: entry.PartNames()}
		}
		out = append(out, value...)

		cursor = end
	}
	out = append(out, string(runes[cursor:])...)
	return string(out), nil
}
