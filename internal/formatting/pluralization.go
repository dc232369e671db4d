package formatting

func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeCouriers склонение слова "курьер"
func PluralizeCouriers(count int) string {
	return pluralize(count, "курьер", "курьера", "курьеров")
}

// PluralizeShifts склонение слова "выход"
func PluralizeShifts(count int) string {
	return pluralize(count, "выход", "выхода", "выходов")
}

// PluralizeReserves склонение слова "резерв"
func PluralizeReserves(count int) string {
	return pluralize(count, "резерв", "резерва", "резервов")
}
