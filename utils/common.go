package utils

// DETTOL is the smallest |det J| accepted for a randomly embedded element
const DETTOL = 1.e-2
