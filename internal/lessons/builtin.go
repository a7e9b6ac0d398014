// Package lessons holds the dictation lesson catalog.
package lessons

import "github.com/verte-zerg/aprendemos/internal/dictee"

func w(word, article, translation string, alts ...string) dictee.Word {
	return dictee.Word{Word: word, Article: article, Translation: translation, AltTranslations: alts}
}

var leSonS = dictee.Lesson{
	ID:          "le-son-s",
	Title:       "Le son [s]",
	Description: "Practica las diferentes formas de escribir el sonido [s] en francés",
	Emoji:       "🐍",
	Groups: []dictee.Group{
		{
			Label: "s",
			Words: []dictee.Word{
				w("cactus", "le", "el cactus", "la rosa", "el pino", "la margarita"),
				w("sardine", "la", "la sardina", "el atún", "la trucha", "el salmón"),
				w("sirène", "la", "la sirena", "la ballena", "el delfín", "la medusa"),
				w("insecte", "l'", "el insecto", "el pájaro", "el pez", "la araña"),
				w("sucre", "le", "el azúcar", "la sal", "la harina", "la mantequilla"),
			},
		},
		{
			Label: "ss (entre 2 voyelles)",
			Words: []dictee.Word{
				w("ramasser", "", "recoger", "lanzar", "correr", "romper"),
				w("boisson", "la", "la bebida", "la comida", "la fruta", "el postre"),
				w("vaisselle", "la", "la vajilla", "la mesa", "la silla", "la cocina"),
				w("cesser", "", "cesar", "empezar", "correr", "saltar"),
				w("tissu", "le", "la tela", "el hilo", "el botón", "la aguja"),
				w("poussière", "la", "el polvo", "la tierra", "la arena", "el barro"),
				w("essai", "l'", "el ensayo", "el libro", "la carta", "el cuento"),
				w("frisson", "le", "el escalofrío", "el calor", "el sudor", "la fiebre"),
				w("tasse", "la", "la taza", "el vaso", "el plato", "la botella"),
			},
		},
		{
			Label: "c (devant e, i, y)",
			Words: []dictee.Word{
				w("rapace", "le", "el rapaz (ave)", "el conejo", "el ratón", "la paloma"),
				w("face", "la", "la cara", "la mano", "el pie", "la nariz"),
				w("citron", "le", "el limón", "la naranja", "la manzana", "la pera"),
				w("citrouille", "la", "la calabaza", "el tomate", "la zanahoria", "el pepino"),
				w("racine", "la", "la raíz", "la hoja", "la flor", "la rama"),
				w("cycle", "le", "el ciclo", "el camino", "el viaje", "la ruta"),
				w("cyclone", "le", "el ciclón", "la lluvia", "la nieve", "el trueno"),
				w("cygne", "le", "el cisne", "el pato", "la gallina", "el gallo"),
				w("bicyclette", "la", "la bicicleta", "el coche", "el avión", "el tren"),
				w("lancer", "", "lanzar", "atrapar", "correr", "nadar"),
				w("limace", "la", "la babosa", "la hormiga", "la abeja", "la mosca"),
			},
		},
		{
			Label: "ç (devant a, o, u)",
			Words: []dictee.Word{
				w("façade", "la", "la fachada", "la ventana", "la puerta", "el techo"),
				w("garçon", "le", "el niño", "la niña", "el bebé", "el abuelo"),
				w("déçu", "", "decepcionado", "contento", "enojado", "cansado"),
				w("reçu", "", "recibido", "enviado", "perdido", "olvidado"),
				w("glaçon", "le", "el cubito de hielo", "la nieve", "el agua", "la lluvia"),
				w("lançons", "nous", "lanzamos", "corremos", "saltamos", "cantamos"),
				w("leçon", "la", "la lección", "el examen", "el recreo", "la tarea"),
			},
		},
		{
			Label: "sc",
			Words: []dictee.Word{
				w("science", "la", "la ciencia", "la historia", "el arte", "la música"),
				w("piscine", "la", "la piscina", "el parque", "la playa", "el jardín"),
				w("discipline", "la", "la disciplina", "la libertad", "la paciencia", "la alegría"),
			},
		},
		{
			Label: "t",
			Words: []dictee.Word{
				w("attention", "l'", "la atención", "la diversión", "el silencio", "la calma"),
				w("récréation", "la", "el recreo", "la clase", "el examen", "la tarea"),
				w("acrobatie", "l'", "la acrobacia", "la danza", "la carrera", "el salto"),
				w("intention", "l'", "la intención", "la atención", "la emoción", "la solución"),
			},
		},
	},
}

// Builtin returns the lessons shipped with the program.
func Builtin() []dictee.Lesson {
	return []dictee.Lesson{leSonS}
}
