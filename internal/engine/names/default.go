package names

// bulgaria lists the provinces in the order the province browser shows them.
var bulgaria = []Entry{
	{"Благоевград", "Blagoevgrad"},
	{"Бургас", "Burgas"},
	{"Варна", "Varna"},
	{"Велико Търново", "Veliko Tarnovo"},
	{"Видин", "Vidin"},
	{"Враца", "Vratsa"},
	{"Габрово", "Gabrovo"},
	{"Кърджали", "Kardzhali"},
	{"Кюстендил", "Kyustendil"},
	{"Ловеч", "Lovech"},
	{"Монтана", "Montana"},
	{"Пазарджик", "Pazardzhik"},
	{"Перник", "Pernik"},
	{"Плевен", "Pleven"},
	{"Пловдив", "Plovdiv"},
	{"Разград", "Razgrad"},
	{"Русе", "Ruse"},
	{"Силистра", "Silistra"},
	{"Сливен", "Sliven"},
	{"Смолян", "Smolyan"},
	{"София", "Sofia"},
	{"Стара Загора", "Stara Zagora"},
	{"Добрич", "Dobrich"},
	{"Търговище", "Targovishte"},
	{"Хасково", "Haskovo"},
	{"Шумен", "Shumen"},
	{"Ямбол", "Yambol"},
}

var defaultTable = mustTable(bulgaria)

// Default returns the embedded Bulgarian province table.
func Default() *Table {
	return defaultTable
}

func mustTable(entries []Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}
