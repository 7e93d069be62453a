package engine

// matureSeedlings advances every seedling's countdown by one day. Seedlings
// reaching zero convert to their mature asset type; amounts merge into an
// existing mature asset of that type on the same cell, else a new entry is
// appended. Cells are independent, so processing order does not matter.
func (e *GameEngine) matureSeedlings() {
	for y := 0; y < e.grid.Height(); y++ {
		for x := 0; x < e.grid.Width(); x++ {
			e.matureCell(e.grid.CellAt(x, y))
		}
	}
}

// matureCell runs the maturation pass for a single cell
func (e *GameEngine) matureCell(cell *Cell) {
	var maturedTypes []AssetType
	maturedAmounts := make(map[AssetType]int)

	kept := cell.Assets[:0]
	for _, asset := range cell.Assets {
		if !asset.IsSeedling() {
			kept = append(kept, asset)
			continue
		}
		*asset.MaturityTime--
		if *asset.MaturityTime > 0 {
			kept = append(kept, asset)
			continue
		}
		matureType := seedlingToAsset[asset.Type]
		if _, seen := maturedAmounts[matureType]; !seen {
			maturedTypes = append(maturedTypes, matureType)
		}
		maturedAmounts[matureType] += asset.Amount
	}
	cell.Assets = kept

	for _, matureType := range maturedTypes {
		amount := maturedAmounts[matureType]
		if i := cell.findMatureAsset(matureType); i >= 0 {
			cell.Assets[i].Amount += amount
			continue
		}
		cell.Assets = append(cell.Assets, &Asset{Type: matureType, Amount: amount})
	}
}
