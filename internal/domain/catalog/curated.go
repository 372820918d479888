package catalog

import "fmt"

const incesCampus = "https://campus.inces.edu.ve/"

var incesCourses = []Course{
	{ID: "i1", Title: "Desarrollo Web Avanzado", Provider: "INCES", Description: "Creación de apps web con PHP, MySQL y frameworks.", Image: "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800", URL: incesCampus, Category: "Tecnología"},
	{ID: "i2", Title: "Seguridad Informática", Provider: "INCES", Description: "Protección de redes y sistemas contra amenazas modernas.", Image: "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=800", URL: incesCampus, Category: "Tecnología"},
	{ID: "i3", Title: "Introducción a Cloud Computing", Provider: "INCES", Description: "Fundamentos de servicios en la nube (AWS, Azure, GCP).", Image: "https://images.unsplash.com/photo-1544197150-b99a580bb7a8?w=800", URL: incesCampus, Category: "Tecnología"},
	{ID: "i4", Title: "Edición de Páginas Web", Provider: "INCES", Description: "Maquetación y diseño de sitios web estáticos y blogs.", Image: "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800", URL: incesCampus, Category: "Tecnología"},
	{ID: "i5", Title: "Manejo de Cámaras", Provider: "INCES", Description: "Operación profesional de equipos de grabación y fotografía.", Image: "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?w=800", URL: incesCampus, Category: "Comunicación"},
	{ID: "i6", Title: "Guión Audiovisual", Provider: "INCES", Description: "Escritura creativa para cine, TV y medios digitales.", Image: "https://images.unsplash.com/photo-1485846234645-a62644f84728?w=800", URL: incesCampus, Category: "Comunicación"},
	{ID: "i10", Title: "Plan de Negocio", Provider: "INCES", Description: "Creación de propuestas de emprendimientos exitosos.", Image: "https://images.unsplash.com/photo-1507679799987-c73779587ccf?w=800", URL: incesCampus, Category: "Gestión"},
	{ID: "i11", Title: "Administración de la PyME", Provider: "INCES", Description: "Fundamentos de gestión para pequeñas y medianas empresas.", Image: "https://images.unsplash.com/photo-1554224155-1696413565d3?w=800", URL: incesCampus, Category: "Gestión"},
}

var channelGroups = []ChannelGroup{
	{
		Category: "Ofimática Avanzada",
		Items: []ChannelItem{
			{ID: "yo1", Title: "Excel: de Básico a Experto", URL: "https://www.youtube.com/embed/videoseries?list=PL9fKz8L6G05S4T-YdG8UqY7A_pS7lGv6Y", Image: "https://images.unsplash.com/photo-1586281380349-631531a744c2?w=800", Description: "Domina fórmulas, tablas dinámicas y macros."},
			{ID: "yo2", Title: "Productividad con Office 365", URL: "https://www.youtube.com/embed/videoseries?list=PL9fKz8L6G05Te-r9qK27O6_Y3V2S-Y_vM", Image: "https://images.unsplash.com/photo-1512428559083-a401c33c466b?w=800", Description: "Mejora tu flujo de trabajo en Word y PowerPoint."},
		},
	},
	{
		Category: "Finanzas & Economía",
		Items: []ChannelItem{
			{ID: "yf1", Title: "Finanzas para no Financieros", URL: "https://www.youtube.com/embed/videoseries?list=PL_XqN92UfLq3_M_NTo-D9R6-gR0vYv_Mh", Image: "https://images.unsplash.com/photo-1579621970795-87f967b16c8d?w=800", Description: "Aprende a gestionar presupuestos y ahorros."},
			{ID: "yf2", Title: "Principios de Economía Moderna", URL: "https://www.youtube.com/embed/videoseries?list=PL3oW2tjiCw4S0r7q6g-5N_89L_6Y8u3rR", Image: "https://images.unsplash.com/photo-1611974714158-f88c1465afad?w=800", Description: "Entiende cómo funciona el mercado global."},
		},
	},
	{
		Category: "Cripto & Web3",
		Items: []ChannelItem{
			{ID: "yc1", Title: "Ecosistema Cripto 2025", URL: "https://www.youtube.com/embed/videoseries?list=PLZ87mO5FqO9V9m5Q7Q-L9n6Wq9C_qY-tB", Image: "https://images.unsplash.com/photo-1621761191319-c6fb62004040?w=800", Description: "Bitcoin, Ethereum y el futuro de las finanzas."},
			{ID: "yc2", Title: "Desarrollo en Blockchain", URL: "https://www.youtube.com/embed/videoseries?list=PLuEBeYyS_1f8L9S_yC8v0j0D9pM7G-O8N", Image: "https://images.unsplash.com/photo-1639762681485-074b7f938ba0?w=800", Description: "Crea tus primeros Smart Contracts."},
		},
	},
	{
		Category: "Tecnología & IA",
		Items: []ChannelItem{
			{ID: "y1", Title: "Fundamentos de IA", URL: "https://www.youtube.com/embed/videoseries?list=PLZ87mO5FqO9XUe4L00f7XN8W-F_0v0wE4", Image: "https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800", Description: "Aprende qué es y cómo usar la inteligencia artificial."},
			{ID: "y2", Title: "Electrónica y Robótica", URL: "https://www.youtube.com/embed/videoseries?list=PLfT8L0_rAnUfF7r3lVscW4SshO0t6eO6f", Image: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=800", Description: "Construye y programa tus propios sistemas."},
		},
	},
}

var curatedArchives = map[ArchiveTab][]ArchiveItem{
	TabInformatica: {
		{ID: "inf-1", Title: "Windows XP SP3 ISO", Description: "Imagen ISO original del sistema operativo más icónico de Microsoft.", Thumbnail: "https://images.unsplash.com/photo-1629654297299-c8506221ca97?w=400", Type: TabInformatica, IAID: "windows-xp-professional-sp3-iso-image-genuine"},
		{ID: "inf-2", Title: "Hiren's BootCD 15.2", Description: "Herramienta definitiva de diagnóstico y reparación de computadoras.", Thumbnail: "https://images.unsplash.com/photo-1588505284419-3ce392ec5215?w=400", Type: TabInformatica, IAID: "hirens-boot-cd-15.2"},
		{ID: "inf-3", Title: "Colección de Drivers Universales", Description: "Paquete histórico de controladores para hardware legacy.", Thumbnail: "https://images.unsplash.com/photo-1591405351990-4726e331f141?w=400", Type: TabInformatica, IAID: "drivers-collection"},
		{ID: "inf-4", Title: "Linux Kernel 0.01 Source", Description: "El código fuente original que inició la revolución del software libre.", Thumbnail: "https://images.unsplash.com/photo-1629654297245-6346d03f0970?w=400", Type: TabInformatica, IAID: "linux-0.01"},
		{ID: "inf-5", Title: "Norton Ghost 2003", Description: "Utilidad clásica para clonación de discos duros y respaldos.", Thumbnail: "https://images.unsplash.com/photo-1544197150-b99a580bb7a8?w=400", Type: TabInformatica, IAID: "norton-ghost-2003"},
		{ID: "inf-6", Title: "Ultimate Boot CD", Description: "Consolidación de herramientas de testeo para CPU, RAM y Discos.", Thumbnail: "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400", Type: TabInformatica, IAID: "ubcd538"},
		{ID: "inf-7", Title: "MS-DOS 6.22 ISO", Description: "El sistema operativo de línea de comandos base para la era PC.", Thumbnail: "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400", Type: TabInformatica, IAID: "msdos622_iso"},
		{ID: "inf-8", Title: "Winamp Full Collection", Description: "Reproductores y skins del software que cambió la música digital.", Thumbnail: "https://images.unsplash.com/photo-1614613535308-eb5fbd3d2c17?w=400", Type: TabInformatica, IAID: "winamp_skins"},
		{ID: "inf-9", Title: "Debian 1.1 Buzz", Description: "Una de las primeras distribuciones estables de la comunidad Debian.", Thumbnail: "https://images.unsplash.com/photo-1527477396000-e27163b481c2?w=400", Type: TabInformatica, IAID: "debian-1.1"},
		{ID: "inf-10", Title: "Netscape Navigator 4.0", Description: "El navegador que dominó la web en los años 90.", Thumbnail: "https://images.unsplash.com/photo-1544197150-b99a580bb7a8?w=400", Type: TabInformatica, IAID: "netscape_4.0"},
		{ID: "inf-11", Title: "AutoCAD 10 para DOS", Description: "Software de diseño industrial pionero en la computación personal.", Thumbnail: "https://images.unsplash.com/photo-1581094794329-c8112a89af12?w=400", Type: TabInformatica, IAID: "autocad_10"},
		{ID: "inf-12", Title: "Office 97 Pro", Description: "Suite ofimática clásica que definió el trabajo en oficina.", Thumbnail: "https://images.unsplash.com/photo-1512428559083-a401c33c466b?w=400", Type: TabInformatica, IAID: "office-97-pro"},
	},
	TabSoftware: withFiller([]ArchiveItem{
		{ID: "s-1", Title: "Adobe Photoshop 1.0", Description: "La primera versión del editor de imágenes más famoso del mundo.", Thumbnail: "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400", Type: TabSoftware, IAID: "photoshop_1_0_1_mac"},
		{ID: "s-2", Title: "Windows 3.11 for Workgroups", Description: "Versión legendaria con soporte nativo para redes.", Thumbnail: "https://images.unsplash.com/photo-1629654297299-c8506221ca97?w=400", Type: TabSoftware, IAID: "win311"},
		{ID: "s-3", Title: "CorelDRAW 3.0", Description: "Herramienta de diseño vectorial clásica de los 90.", Thumbnail: "https://images.unsplash.com/photo-1581094794329-c8112a89af12?w=400", Type: TabSoftware, IAID: "coreldraw_3.0"},
		{ID: "s-4", Title: "Quake Full Shareware", Description: "El motor gráfico que revolucionó los videojuegos 3D.", Thumbnail: "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=400", Type: TabSoftware, IAID: "QuakeShareware"},
	}, filler{
		count:       8,
		idPrefix:    "s-extra-",
		title:       "Software Legacy Vol %d",
		description: "Recurso histórico de computación clásica.",
		thumbnail:   "https://images.unsplash.com/photo-1518770660439-4636190af475?w=400",
		tab:         TabSoftware,
		iaID:        "msdos_Pac-Man_1981",
	}),
	TabAudio: withFiller([]ArchiveItem{
		{ID: "a-1", Title: "Discurso de Angostura", Description: "Audio histórico con la proclama del Libertador Simón Bolívar.", Thumbnail: "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?w=400", Type: TabAudio, IAID: "Discurso_de_Angostura"},
		{ID: "a-2", Title: "Beethoven: Sinfonía 9", Description: "Grabación clásica de la Novena Sinfonía dirigida por Karajan.", Thumbnail: "https://images.unsplash.com/photo-1507838153414-b4b713384a76?w=400", Type: TabAudio, IAID: "78_the-blue-danube-waltz"},
		{ID: "a-3", Title: "Apollo 11 Landing Audio", Description: "Comunicaciones originales del alunizaje en 1969.", Thumbnail: "https://images.unsplash.com/photo-1446776811953-b23d57bd21aa?w=400", Type: TabAudio, IAID: "Apollo11Audio"},
	}, filler{
		count:       9,
		idPrefix:    "a-extra-",
		title:       "Archivo Sonoro Histórico %d",
		description: "Grabación de dominio público preservada.",
		thumbnail:   "https://images.unsplash.com/photo-1511671782779-c97d3d27a1d4?w=400",
		tab:         TabAudio,
		iaID:        "lp_the-nine-symphonies-of-beethoven_ludwig-van-beethoven",
	}),
	TabImage: withFiller([]ArchiveItem{
		{ID: "im-1", Title: "Cartografía de Venezuela 1884", Description: "Mapas detallados de la geografía nacional del siglo XIX.", Thumbnail: "https://images.unsplash.com/photo-1505373877841-8d25f7d46678?w=400", Type: TabImage, IAID: "venezuelancartography"},
		{ID: "im-2", Title: "Caracas Antigua 1940", Description: "Colección fotográfica de la capital venezolana antes de la modernización.", Thumbnail: "https://images.unsplash.com/photo-1531297484001-80022131f5a1?w=400", Type: TabImage, IAID: "Caracas-Antigua"},
	}, filler{
		count:       10,
		idPrefix:    "im-extra-",
		title:       "Galería Histórica Vol %d",
		description: "Documento gráfico de alta resolución.",
		thumbnail:   "https://images.unsplash.com/photo-1505373877841-8d25f7d46678?w=400",
		tab:         TabImage,
		iaID:        "venezuelancartography",
	}),
}

// filler describes numbered placeholder items appended to a curated tab.
// Ids count from zero, titles from one.
type filler struct {
	count       int
	idPrefix    string
	title       string
	description string
	thumbnail   string
	tab         ArchiveTab
	iaID        string
}

func withFiller(items []ArchiveItem, f filler) []ArchiveItem {
	for i := 0; i < f.count; i++ {
		items = append(items, ArchiveItem{
			ID:          fmt.Sprintf("%s%d", f.idPrefix, i),
			Title:       fmt.Sprintf(f.title, i+1),
			Description: f.description,
			Thumbnail:   f.thumbnail,
			Type:        f.tab,
			IAID:        f.iaID,
		})
	}
	return items
}

// snapshotCategories are the course topics refreshed into the video snapshot.
var snapshotCategories = []struct {
	id    string
	query string
}{
	{id: "ia", query: "Inteligencia Artificial curso completo español"},
	{id: "trading", query: "Trading y Mercados curso completo español"},
	{id: "finanzas", query: "Finanzas Personales curso completo español"},
	{id: "programacion", query: "Programación Web curso completo español"},
	{id: "office", query: "Microsoft Office curso completo español"},
}

func fallbackNews(date string) []NewsArticle {
	return []NewsArticle{
		{
			ID:       "err-1",
			Title:    "Explorando el potencial de la IA en la educación",
			Summary:  "Expertos mundiales analizan cómo la inteligencia artificial generativa puede personalizar el aprendizaje. Se destaca la importancia de mantener la ética y el control humano en el aula.",
			Category: newsCategoryTech,
			URL:      "https://google.com/search?q=IA+educacion",
			Date:     date,
		},
		{
			ID:       "err-2",
			Title:    "Venezuela destaca en la conservación de biodiversidad",
			Summary:  "Nuevos informes resaltan los esfuerzos en parques nacionales para proteger especies en peligro de extinción. El turismo científico gana terreno como motor económico sustentable.",
			Category: newsCategoryVenezuela,
			URL:      "https://google.com/search?q=Venezuela+biodiversidad",
			Date:     date,
		},
	}
}
